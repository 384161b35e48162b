package contract

import (
	"context"
	"io"
)

// Decoder: 将单个输入流解码为有序的 Entry 序列，逐条回调。
// 约束：
// 1) 拉取式：每次只读取一条记录所需的文本，不预读；
// 2) 行级/字段级错误计入 Entry，不终止；
// 3) I/O 错误与 yield 返回的错误立即终止并上抛；
// 4) 无内部并发。
type Decoder interface {
	Decode(ctx context.Context, fileID FileID, r io.Reader, yield func(Entry) error) error
}
