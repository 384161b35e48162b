// Package rusmarc 把一个输入流解码为目录条目序列：分段 -> 类型化 -> 属性提取。
package rusmarc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rusmarc/pkg/catalog"
	"rusmarc/pkg/contract"
	"rusmarc/pkg/record"
	"rusmarc/pkg/typed"
)

// Options 为解码器的可选配置。
type Options struct {
	// MaxRecordBytes: 单条记录文本最大字节数。0 表示不限制。
	MaxRecordBytes int `json:"max_record_bytes"`
	// SkipEmpty: 丢弃没有任何成功类型化字段的记录。
	SkipEmpty bool `json:"skip_empty"`
}

// Decoder 实现 contract.Decoder。无内部状态，可复用。
type Decoder struct {
	opts record.Options
	skip bool
	reg  *typed.Registry
}

// New 创建解码器；reg 为 nil 时使用内置分派表。
func New(opts *Options, reg *typed.Registry) *Decoder {
	d := &Decoder{reg: reg}
	if opts != nil {
		if opts.MaxRecordBytes > 0 {
			d.opts.MaxRecordBytes = opts.MaxRecordBytes
		}
		d.skip = opts.SkipEmpty
	}
	if d.reg == nil {
		d.reg = typed.Default()
	}
	return d
}

// Decode 逐条记录回调 yield。记录序号按输入顺序从 0 递增（含被 SkipEmpty 丢弃的记录）。
func (d *Decoder) Decode(ctx context.Context, fileID contract.FileID, r io.Reader, yield func(contract.Entry) error) error {
	seg := record.NewSegmenter(r, &d.opts)
	var idx int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := seg.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: record %d: %w", fileID, idx, err)
		}
		e := catalog.FromRecord(d.reg, fileID, idx, raw)
		idx++
		if d.skip && e.Fields == 0 {
			continue
		}
		if err := yield(e); err != nil {
			return err
		}
	}
}
