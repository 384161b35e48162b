package typed

import (
	"fmt"
	"iter"

	"rusmarc/pkg/contract"
)

// FieldError 为单个字段的解析失败；字段被跳过，不影响同记录其他字段。
type FieldError struct {
	Number contract.Number
	Err    error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %03d: %v", e.Number, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// Record 为类型化记录：按输入顺序保存解析成功的字段。
type Record struct {
	fields []contract.TypedField
}

// Parse 用 reg 解析一组字段（调用方已滤除行级错误）；reg 为 nil 时使用 Default()。
// 成功的字段按输入顺序进入记录，失败与未注册的字段各产生一条 FieldError。
func Parse(reg *Registry, fields []contract.Field) (*Record, []FieldError) {
	if reg == nil {
		reg = Default()
	}
	rec := &Record{fields: make([]contract.TypedField, 0, len(fields))}
	var errs []FieldError
	for _, f := range fields {
		v, err := reg.Parse(f)
		if err != nil {
			errs = append(errs, FieldError{Number: f.Number, Err: err})
			continue
		}
		rec.fields = append(rec.fields, v)
	}
	return rec, errs
}

// Len 返回类型化字段数量。
func (r *Record) Len() int { return len(r.fields) }

// Fields 返回全部类型化字段的副本。
func (r *Record) Fields() []contract.TypedField {
	out := make([]contract.TypedField, len(r.fields))
	copy(out, r.fields)
	return out
}

// OfKind 按 Kind 过滤，保持原顺序；可重复遍历。
func (r *Record) OfKind(k contract.Kind) iter.Seq[contract.TypedField] {
	return func(yield func(contract.TypedField) bool) {
		for _, f := range r.fields {
			if f.Kind() == k && !yield(f) {
				return
			}
		}
	}
}

// Get 返回类型为 T 的全部字段，保持原顺序；可重复遍历。
// T 须为值类型（内置字段均以值接收者实现 TypedField）。
func Get[T contract.TypedField](r *Record) iter.Seq[T] {
	var zero T
	kind := zero.Kind()
	return func(yield func(T) bool) {
		for _, f := range r.fields {
			if f.Kind() != kind {
				continue
			}
			v, ok := f.(T)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// First 返回第一个类型为 T 的字段。
func First[T contract.TypedField](r *Record) (T, bool) {
	for v := range Get[T](r) {
		return v, true
	}
	var zero T
	return zero, false
}
