package contract

import (
	"path"
	"strings"
)

// FileID: 逻辑输入标识（通常为路径，需规范化，跨平台一致）。
type FileID string

// NormalizeFileID 规范化路径：反斜杠统一为正斜杠，再做 path.Clean。
// 保留相对/绝对语义，不做隐式绝对化。
func NormalizeFileID(p string) FileID {
	return FileID(path.Clean(strings.ReplaceAll(p, "\\", "/")))
}

// Number: 字段号。取值上限为 MaxNumber（4294967295），
// 足以覆盖转储中出现的保留号 2147483647。
type Number uint32

// MaxNumber 为字段号允许的最大值；更长的数字串按 ErrNumberOverflow 处理。
const MaxNumber = ^Number(0)

// SubfieldIntroducer: 子字段引导符。数据部分以它开头即为子字段形式。
const SubfieldIntroducer = '^'

// Subfield: 单字符标记 + 文本。Text 构造上保证非空。
type Subfield struct {
	Marker rune   `json:"marker"`
	Text   string `json:"text"`
}

// PayloadKind 区分整行文本与子字段列表。
type PayloadKind uint8

const (
	PayloadFullLine PayloadKind = iota
	PayloadSubfields
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadSubfields:
		return "subfields"
	default:
		return "full_line"
	}
}

// Payload: 字段数据（标签联合）。
// Kind=PayloadFullLine 时仅 Text 有意义；Kind=PayloadSubfields 时仅 Subfields 有意义，
// 顺序即行内出现顺序，同一标记可重复。
type Payload struct {
	Kind      PayloadKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Subfields []Subfield  `json:"subfields,omitempty"`
}

// FullLine 构造整行载荷。
func FullLine(text string) Payload {
	return Payload{Kind: PayloadFullLine, Text: text}
}

// SubfieldList 构造子字段载荷。
func SubfieldList(subs ...Subfield) Payload {
	return Payload{Kind: PayloadSubfields, Subfields: subs}
}

// IsSubfields 报告载荷是否为子字段形式。
func (p Payload) IsSubfields() bool { return p.Kind == PayloadSubfields }

// Values 按出现顺序返回标记为 marker 的全部子字段文本；整行载荷返回 nil。
func (p Payload) Values(marker rune) []string {
	var out []string
	for _, s := range p.Subfields {
		if s.Marker == marker {
			out = append(out, s.Text)
		}
	}
	return out
}

// Has 报告是否至少存在一个 marker 子字段。
func (p Payload) Has(marker rune) bool {
	for _, s := range p.Subfields {
		if s.Marker == marker {
			return true
		}
	}
	return false
}

// Markers 返回去重后的标记集合（保持首次出现顺序）。
func (p Payload) Markers() []rune {
	seen := make(map[rune]struct{}, len(p.Subfields))
	var out []rune
	for _, s := range p.Subfields {
		if _, ok := seen[s.Marker]; ok {
			continue
		}
		seen[s.Marker] = struct{}{}
		out = append(out, s.Marker)
	}
	return out
}

// Field: 字段号 + 载荷。构造后不应修改。
type Field struct {
	Number  Number  `json:"number"`
	Payload Payload `json:"payload"`
}

// Item: 记录中的一项，对应一个非空行。
// Err 非空时 Field 无意义（通常为 *LineError）。
type Item struct {
	// Line: 输入流内的物理行号（1 起）。
	Line  int
	Field Field
	Err   error
}

// OK 报告该项是否为成功解析的字段。
func (it Item) OK() bool { return it.Err == nil }

// Record: 逻辑记录，按输入行序保存，不重排；同一字段号可重复出现。
type Record []Item
