package contract

import (
	"errors"
	"fmt"
)

// 行级（分词）错误：不终止流。
var (
	// ErrNoNumber: 行首没有数字串。
	ErrNoNumber = errors.New("no number present")
	// ErrNumberOverflow: 数字串超出 Number 宽度。
	ErrNumberOverflow = errors.New("field number overflow")
)

// 字段级（类型化）错误：只影响该字段。
var (
	// ErrUnknownField: 注册表中没有该字段号的解析器。
	ErrUnknownField = errors.New("unknown field type")
	// ErrShape: 载荷形态不符（期望整行却得到子字段，或相反）。
	ErrShape = errors.New("unexpected payload shape")
	// ErrCardinality: 子字段出现次数不符（多于一次或缺失）。
	ErrCardinality = errors.New("subfield cardinality violation")
	// ErrFormat: 值格式错误（数字微格式中的非法字符、分量数量不对等）。
	ErrFormat = errors.New("value format error")
)

// 流级 / 运行期错误。
var (
	// ErrRecordTooLarge: 单条记录累计字节超过上限。
	ErrRecordTooLarge = errors.New("record too large")
	// ErrPathInvalid: 目标标识映射为无效/越界路径（例如绝对路径或 '..' 逃逸）。
	ErrPathInvalid = errors.New("path invalid")
	// ErrInvalidInput: 调用参数不满足约束。
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation: 领域不变量违例（通用哨兵）。
	ErrInvariantViolation = errors.New("invariant violation")
)

// LineError 携带出错的物理行号；Unwrap 返回具体哨兵错误。
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
