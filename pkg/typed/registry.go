// Package typed 把字段按字段号分派给各自的解析器，得到类型化字段与类型化记录。
//
// 分派表为“字段号 -> 解析器”的映射，进程内构建一次；新增字段种类只需追加表项。
package typed

import (
	"fmt"
	"slices"
	"sync"

	"rusmarc/pkg/contract"
)

// Parser 把载荷解析为类型化字段；失败时返回包装了 contract 哨兵错误的 error。
type Parser func(contract.Payload) (contract.TypedField, error)

// Entry 为分派表的一项。Kind 必须与解析结果的 Kind() 一致。
type Entry struct {
	Number contract.Number
	Kind   contract.Kind
	Parse  Parser
}

// Registry 为只读分派表；构建后可被多个 goroutine 共享。
type Registry struct {
	table map[contract.Number]Entry
}

// NewRegistry 根据表项构建分派表；字段号或 Kind 重复、解析器为空时返回 ErrInvalidInput。
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{table: make(map[contract.Number]Entry, len(entries))}
	if err := r.add(entries); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(entries []Entry) error {
	kinds := make(map[contract.Kind]contract.Number, len(r.table)+len(entries))
	for n, e := range r.table {
		kinds[e.Kind] = n
	}
	for _, e := range entries {
		if e.Parse == nil || e.Kind == "" {
			return fmt.Errorf("%w: entry %d incomplete", contract.ErrInvalidInput, e.Number)
		}
		if _, dup := r.table[e.Number]; dup {
			return fmt.Errorf("%w: duplicate field number %d", contract.ErrInvalidInput, e.Number)
		}
		if n, dup := kinds[e.Kind]; dup {
			return fmt.Errorf("%w: kind %q already bound to %d", contract.ErrInvalidInput, e.Kind, n)
		}
		r.table[e.Number] = e
		kinds[e.Kind] = e.Number
	}
	return nil
}

// With 返回在当前表基础上追加表项的新分派表，原表不变。
func (r *Registry) With(entries ...Entry) (*Registry, error) {
	nr := &Registry{table: make(map[contract.Number]Entry, len(r.table)+len(entries))}
	for n, e := range r.table {
		nr.table[n] = e
	}
	if err := nr.add(entries); err != nil {
		return nil, err
	}
	return nr, nil
}

// Lookup 返回字段号对应的表项。
func (r *Registry) Lookup(n contract.Number) (Entry, bool) {
	e, ok := r.table[n]
	return e, ok
}

// Numbers 返回已注册的字段号（升序）。
func (r *Registry) Numbers() []contract.Number {
	out := make([]contract.Number, 0, len(r.table))
	for n := range r.table {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Len 返回表项数量。
func (r *Registry) Len() int { return len(r.table) }

// Parse 解析单个字段。未注册的字段号返回 ErrUnknownField。
func (r *Registry) Parse(f contract.Field) (contract.TypedField, error) {
	e, ok := r.table[f.Number]
	if !ok {
		return nil, contract.ErrUnknownField
	}
	v, err := e.Parse(f.Payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default 返回内置字段分派表。
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtin()...)
		if err != nil {
			// 内置表自洽由测试保证
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}

func builtin() []Entry {
	var out []Entry
	out = append(out, entries0xx()...)
	out = append(out, entries1xx()...)
	out = append(out, entries2xx()...)
	return out
}
