// Package record 按分隔行（仅由 '*' 组成的行）把输入切分为逻辑记录。
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"rusmarc/pkg/contract"
	"rusmarc/pkg/field"
)

// Options 分段参数。
type Options struct {
	// MaxRecordBytes: 单条记录累计字节上限（不含分隔行）；0 表示不限制。
	MaxRecordBytes int `json:"max_record_bytes"`
}

// Segmenter 逐条拉取记录。单遍、非并发安全。
type Segmenter struct {
	br   *bufio.Reader
	opts Options
	line int
	eof  bool
	err  error
}

// NewSegmenter 创建分段器；opts 为 nil 时使用零值（不限制大小）。
func NewSegmenter(r io.Reader, opts *Options) *Segmenter {
	s := &Segmenter{br: bufio.NewReader(r)}
	if opts != nil {
		s.opts = *opts
	}
	return s
}

// IsSeparator 报告 line 去除首尾空白后是否非空且只含 '*'。
func IsSeparator(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	return strings.Trim(t, "*") == ""
}

// Next 返回下一条记录；输入耗尽时返回 io.EOF。
// 只含空行的片段不会产出空记录。读错误与 ErrRecordTooLarge 会终止后续迭代。
func (s *Segmenter) Next() (contract.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		text, start, err := s.collect()
		if err != nil {
			s.err = err
			return nil, err
		}
		if text == "" {
			if s.eof {
				s.err = io.EOF
				return nil, io.EOF
			}
			continue
		}
		rec, err := field.NewStream(strings.NewReader(text), field.WithStartLine(start)).Drain()
		if err != nil {
			s.err = err
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		return rec, nil
	}
}

// collect 读取到分隔行或输入结束为止，返回缓冲文本及其首行之前的行号。
// 片段全部为空白时返回空文本。
func (s *Segmenter) collect() (string, int, error) {
	var b strings.Builder
	start := s.line
	blank := true
	for !s.eof {
		raw, err := s.br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", 0, err
			}
			s.eof = true
			if raw == "" {
				break
			}
		}
		s.line++
		if IsSeparator(raw) {
			break
		}
		if blank && strings.TrimSpace(raw) != "" {
			blank = false
		}
		b.WriteString(raw)
		if !strings.HasSuffix(raw, "\n") {
			b.WriteByte('\n')
		}
		if s.opts.MaxRecordBytes > 0 && b.Len() > s.opts.MaxRecordBytes {
			return "", 0, fmt.Errorf("%w: exceeds %d bytes at line %d", contract.ErrRecordTooLarge, s.opts.MaxRecordBytes, s.line)
		}
	}
	if blank {
		return "", start, nil
	}
	return b.String(), start, nil
}

// All 以 range-over-func 形式遍历剩余记录；出错时产出一次 (nil, err) 后结束。
func (s *Segmenter) All() iter.Seq2[contract.Record, error] {
	return func(yield func(contract.Record, error) bool) {
		for {
			rec, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Fields 丢弃出错项，只保留成功解析的字段（保持顺序）。
func Fields(rec contract.Record) []contract.Field {
	out := make([]contract.Field, 0, len(rec))
	for _, it := range rec {
		if it.OK() {
			out = append(out, it.Field)
		}
	}
	return out
}

// Malformed 返回记录中的出错项。
func Malformed(rec contract.Record) []contract.Item {
	var out []contract.Item
	for _, it := range rec {
		if !it.OK() {
			out = append(out, it)
		}
	}
	return out
}
