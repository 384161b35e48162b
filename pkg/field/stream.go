package field

import (
	"bufio"
	"errors"
	"io"
	"iter"

	"rusmarc/pkg/contract"
)

// Stream 按需逐行读取并分词。空行被跳过；格式错误的行作为带 Err 的 Item 返回，不终止；
// 输入结束返回 io.EOF；其他读错误原样返回并终止。
// 单遍、非并发安全：同一 Stream 只能由一个调用方驱动。
type Stream struct {
	br   *bufio.Reader
	line int
	eof  bool
}

// Option 调整 Stream 行为。
type Option func(*Stream)

// WithStartLine 设置首行之前的行号偏移，用于在外层已消耗若干行时保持物理行号。
func WithStartLine(n int) Option {
	return func(s *Stream) {
		if n > 0 {
			s.line = n
		}
	}
}

// NewStream 创建字段流；r 已是 *bufio.Reader 时直接复用。
func NewStream(r io.Reader, opts ...Option) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{br: br}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Line 返回最近读取的物理行号。
func (s *Stream) Line() int { return s.line }

// Next 返回下一个非空行对应的 Item。
func (s *Stream) Next() (contract.Item, error) {
	for {
		if s.eof {
			return contract.Item{}, io.EOF
		}
		raw, err := s.br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return contract.Item{}, err
			}
			s.eof = true
			if raw == "" {
				return contract.Item{}, io.EOF
			}
		}
		s.line++
		out := Tokenize(raw)
		switch out.Kind {
		case OutcomeBlank:
			continue
		case OutcomeMalformed:
			return contract.Item{Line: s.line, Err: &contract.LineError{Line: s.line, Err: out.Err}}, nil
		default:
			return contract.Item{Line: s.line, Field: out.Field}, nil
		}
	}
}

// All 以 range-over-func 形式遍历剩余 Item；遇到 I/O 错误时产出一次 (零值, err) 后结束。
func (s *Stream) All() iter.Seq2[contract.Item, error] {
	return func(yield func(contract.Item, error) bool) {
		for {
			it, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(contract.Item{}, err)
				return
			}
			if !yield(it, nil) {
				return
			}
		}
	}
}

// Drain 读完剩余输入并收集为 Record。
func (s *Stream) Drain() (contract.Record, error) {
	var rec contract.Record
	for it, err := range s.All() {
		if err != nil {
			return rec, err
		}
		rec = append(rec, it)
	}
	return rec, nil
}
