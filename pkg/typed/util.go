package typed

import (
	"fmt"
	"strings"

	"rusmarc/pkg/contract"
)

// fullLine 要求整行载荷。
func fullLine(p contract.Payload) (string, error) {
	if p.IsSubfields() {
		return "", fmt.Errorf("%w: expected full line, got %d subfields", contract.ErrShape, len(p.Subfields))
	}
	return p.Text, nil
}

// requireSubfields 要求子字段载荷。
func requireSubfields(p contract.Payload) error {
	if !p.IsSubfields() {
		return fmt.Errorf("%w: expected subfields, got full line", contract.ErrShape)
	}
	return nil
}

// maxOne: 0 次返回 nil，1 次返回该值，多次为基数错误。
func maxOne(p contract.Payload, marker rune) (*string, error) {
	vs := p.Values(marker)
	switch len(vs) {
	case 0:
		return nil, nil
	case 1:
		return &vs[0], nil
	default:
		return nil, fmt.Errorf("%w: $%c occurs %d times, expected at most one", contract.ErrCardinality, marker, len(vs))
	}
}

// all 返回标记的全部出现（可重复子字段）。
func all(p contract.Payload, marker rune) []string {
	return p.Values(marker)
}

// concat 拼接标记的全部出现（源数据用重复标记表示折行文本）；无出现时返回 nil。
func concat(p contract.Payload, marker rune) *string {
	vs := p.Values(marker)
	if len(vs) == 0 {
		return nil
	}
	s := strings.Join(vs, "")
	return &s
}

// fillChars 为定长编码数据中的占位字符。
const fillChars = "# |"

// position 取定长编码串 [from, to) 位置（按字符计）。越界或全为占位符时 ok=false。
func position(code []rune, from, to int) (string, bool) {
	if from < 0 || to > len(code) || from >= to {
		return "", false
	}
	s := string(code[from:to])
	if strings.Trim(s, fillChars) == "" {
		return "", false
	}
	return s, true
}

// codes 把 [from, to) 按 width 宽度切分为若干代码，跳过占位。
func codes(code []rune, from, to, width int) []string {
	var out []string
	for i := from; i+width <= to; i += width {
		if s, ok := position(code, i, i+width); ok {
			out = append(out, s)
		}
	}
	return out
}

// subs 顺序读取子字段，记录第一个错误。
type subs struct {
	p   contract.Payload
	err error
}

func (s *subs) one(marker rune) *string {
	v, err := maxOne(s.p, marker)
	if err != nil && s.err == nil {
		s.err = err
	}
	return v
}

func (s *subs) many(marker rune) []string { return all(s.p, marker) }

func (s *subs) joined(marker rune) *string { return concat(s.p, marker) }

// subfielded 构造子字段形式的解析器。
func subfielded[T contract.TypedField](build func(*subs) T) Parser {
	return func(p contract.Payload) (contract.TypedField, error) {
		if err := requireSubfields(p); err != nil {
			return nil, err
		}
		s := &subs{p: p}
		v := build(s)
		if s.err != nil {
			return nil, s.err
		}
		return v, nil
	}
}

// textual 构造整行形式的解析器。
func textual[T contract.TypedField](build func(string) T) Parser {
	return func(p contract.Payload) (contract.TypedField, error) {
		text, err := fullLine(p)
		if err != nil {
			return nil, err
		}
		return build(text), nil
	}
}

// codeName 查表；未知代码返回空串。
func codeName[C ~string](names map[C]string, c C) string { return names[c] }

func ptr[T any](v T) *T { return &v }
