// Package field 实现单行分词（Tokenize）与按行拉取的字段流（Stream）。
//
// 行格式：可选 '#'，字段号数字串，可选 ':'，其后为数据部分。
// 数据部分以 '^' 开头时按 '^' 切分为子字段，否则整体为整行文本。
package field

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"rusmarc/pkg/contract"
)

// OutcomeKind 为单行分词结果的种类。
type OutcomeKind uint8

const (
	// OutcomeField: 成功得到字段。
	OutcomeField OutcomeKind = iota
	// OutcomeMalformed: 行格式错误（Err 为具体原因）。
	OutcomeMalformed
	// OutcomeBlank: 空行或只有字段号的行，调用方应忽略。
	OutcomeBlank
	// OutcomeEnd: 输入结束（仅由 Stream 产生）。
	OutcomeEnd
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeField:
		return "field"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeBlank:
		return "blank"
	case OutcomeEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Outcome 是 Tokenize 的返回值；仅在 Kind 对应的字段上有意义。
type Outcome struct {
	Kind  OutcomeKind
	Field contract.Field
	Err   error
}

// Tokenize 将一个物理行转换为分词结果。
// 行尾的单个 "\n" 及其前的单个 "\r" 会被去除；'#' 与 ':' 均可省略，两种写法结果一致。
// 字段号超出 contract.Number 宽度时返回 ErrNumberOverflow，而不是截断。
func Tokenize(line string) Outcome {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.TrimSpace(line)
	if line == "" {
		return Outcome{Kind: OutcomeBlank}
	}

	numText, data := splitNumber(line)
	if numText == "" {
		return Outcome{Kind: OutcomeMalformed, Err: contract.ErrNoNumber}
	}
	if data == "" {
		// 有字段号但无数据：视为噪声
		return Outcome{Kind: OutcomeBlank}
	}

	n, err := strconv.ParseUint(numText, 10, 32)
	if err != nil {
		return Outcome{Kind: OutcomeMalformed, Err: contract.ErrNumberOverflow}
	}

	return Outcome{
		Kind:  OutcomeField,
		Field: contract.Field{Number: contract.Number(n), Payload: parsePayload(data)},
	}
}

// splitNumber 拆出字段号数字串与数据部分。输入已去除首尾空白。
func splitNumber(line string) (number, data string) {
	if strings.HasPrefix(line, "#") {
		line = strings.TrimLeftFunc(line[1:], unicode.IsSpace)
	}
	end := 0
	for end < len(line) && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	number = line[:end]
	line = strings.TrimLeftFunc(line[end:], unicode.IsSpace)
	if strings.HasPrefix(line, ":") {
		line = strings.TrimLeftFunc(line[1:], unicode.IsSpace)
	}
	return number, strings.TrimSpace(line)
}

func parsePayload(data string) contract.Payload {
	if !strings.HasPrefix(data, string(contract.SubfieldIntroducer)) {
		return contract.FullLine(data)
	}
	return contract.SubfieldList(SplitSubfields(data)...)
}

// SplitSubfields 按 '^' 切分数据部分。每段首个字符（按 UTF-8 解码）为标记，其余为文本；
// 空段与只有标记的段被丢弃，因此返回的每个子字段文本都非空。
func SplitSubfields(data string) []contract.Subfield {
	parts := strings.Split(data, string(contract.SubfieldIntroducer))
	out := make([]contract.Subfield, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		marker, size := utf8.DecodeRuneInString(p)
		if size >= len(p) {
			continue
		}
		out = append(out, contract.Subfield{Marker: marker, Text: p[size:]})
	}
	return out
}
