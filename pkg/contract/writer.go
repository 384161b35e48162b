package contract

import "context"

// Writer: 按输入文件维度持久化 Entry。
// 约束：
//  1. 同一 FileID 单写者；
//  2. Begin 返回的 Artifact 逐条 Put，最后 Commit 或 Abort 二选一；
//  3. ctx 取消/超时需尽快返回；
//  4. 错误直接上抛（不做重试/回退）。
type Writer interface {
	Begin(ctx context.Context, id FileID) (Artifact, error)
}

// Artifact: 单个输入对应的输出工件。Abort 在 Commit 之后调用应为 no-op。
type Artifact interface {
	Put(ctx context.Context, e Entry) error
	Commit() error
	Abort() error
}
