package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"rusmarc/internal/diag"
	"rusmarc/pkg/contract"
)

// - 拉取驱动：Reader 逐文件产出，Decoder 逐记录回调，Writer 逐条 Put；全程同步，无内部并发。
// - 文件即事务：单个文件解码或写入失败时 Abort 该文件的工件，已提交文件不受影响。
// - 记录级容错：分词失败的行与无法类型化的字段只计数并告警，不中断记录。

// Components 聚合运行所需的原子组件。
type Components struct {
	Reader  contract.Reader
	Decoder contract.Decoder
	Writer  contract.Writer
}

// Settings 运行期配置（最小必要）。
type Settings struct {
	Inputs []string
	// KeepGoing: 单个文件失败时继续处理其余文件，结束时汇总返回错误。
	KeepGoing bool
}

// Stats 为一次运行的汇总计数。
type Stats struct {
	Files     int `json:"files"`
	Failed    int `json:"failed"`
	Records   int `json:"records"`
	Partial   int `json:"partial"`
	Fields    int `json:"fields"`
	Skipped   int `json:"skipped"`
	Malformed int `json:"malformed"`
}

// Run 执行流水线：Reader → Decoder → Writer。
// 默认首错即停并返回该错误；KeepGoing 时返回所有失败文件错误的合并。
func Run(ctx context.Context, comp Components, set Settings, logger *diag.Logger) (Stats, error) {
	var st Stats
	if err := sanity(comp, set); err != nil {
		return st, fmt.Errorf("sanity: %w", err)
	}

	var failures []error
	rtimer := (*diag.Timer)(nil)
	if logger != nil {
		rtimer = logger.Start("reader", "iterate")
	}
	err := comp.Reader.Iterate(ctx, set.Inputs, func(fid contract.FileID, rc io.ReadCloser) error {
		defer rc.Close()
		st.Files++
		ferr := runFile(ctx, comp, fid, rc, &st, logger)
		if ferr == nil {
			return nil
		}
		st.Failed++
		// 取消总是终止整个运行
		if set.KeepGoing && diag.Classify(ferr) != diag.CodeCancel {
			failures = append(failures, ferr)
			return nil
		}
		return ferr
	})
	if err != nil {
		fail(logger, "reader", "iterate failed", "", "", err)
		return st, fmt.Errorf("reader iterate: %w", err)
	}
	if d := rtimer.Finish("iterate", int64(st.Files)); rtimer != nil {
		diag.IncOp("reader", "finish", "success")
		diag.ObserveDuration("reader", "iterate", d)
	}
	return st, errors.Join(failures...)
}

// runFile 处理单个输入文件：Begin → 逐条 Put → Commit；任一步失败则 Abort。
func runFile(ctx context.Context, comp Components, fid contract.FileID, r io.Reader, st *Stats, logger *diag.Logger) (err error) {
	term := diag.GetTerminal()
	term.FileStart(string(fid))
	fileStart := time.Now()
	var records, partial int
	defer func() { term.FileFinish(err == nil, time.Since(fileStart)) }()

	art, err := comp.Writer.Begin(ctx, fid)
	if err != nil {
		fail(logger, "writer", "begin failed", string(fid), "", err)
		return fmt.Errorf("writer begin %s: %w", fid, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = art.Abort()
		}
	}()

	dtimer := (*diag.Timer)(nil)
	if logger != nil {
		dtimer = logger.StartWith("decoder", "decode", string(fid), "")
	}
	err = comp.Decoder.Decode(ctx, fid, r, func(e contract.Entry) error {
		records++
		st.Records++
		st.Fields += e.Fields
		st.Skipped += e.Skipped
		st.Malformed += e.Malformed
		diag.ObserveRecord(e.Fields, e.Skipped, e.Malformed)
		if n := e.Skipped + e.Malformed; n > 0 {
			partial++
			st.Partial++
			if logger != nil {
				kv := map[string]string{"line": strconv.Itoa(e.Line)}
				if e.RecordID != "" {
					kv["record_id"] = e.RecordID
				}
				if len(e.Errors) > 0 {
					kv["first"] = e.Errors[0]
				}
				logger.WarnSkip("decoder", string(fid), strconv.FormatInt(e.Index, 10), int64(n), kv)
			}
		}
		term.FileProgress(records, partial)
		if perr := art.Put(ctx, e); perr != nil {
			fail(logger, "writer", "put failed", string(fid), strconv.FormatInt(e.Index, 10), perr)
			return fmt.Errorf("writer put: %w", perr)
		}
		return nil
	})
	if err != nil {
		fail(logger, "decoder", "decode failed", string(fid), "", err)
		return fmt.Errorf("decoder decode: %w", err)
	}
	if d := dtimer.Finish("decode", int64(records)); dtimer != nil {
		diag.IncOp("decoder", "finish", "success")
		diag.ObserveDuration("decoder", "decode", d)
	}

	wtimer := (*diag.Timer)(nil)
	if logger != nil {
		wtimer = logger.StartWith("writer", "commit", string(fid), "")
	}
	committed = true
	if err = art.Commit(); err != nil {
		fail(logger, "writer", "commit failed", string(fid), "", err)
		return fmt.Errorf("writer commit %s: %w", fid, err)
	}
	if d := wtimer.Finish("commit", int64(records)); wtimer != nil {
		diag.IncOp("writer", "finish", "success")
		diag.ObserveDuration("writer", "commit", d)
	}
	return nil
}

// fail 记录 error 事件与错误指标。
func fail(logger *diag.Logger, comp, msg, fileID, record string, err error) {
	code := diag.Classify(err)
	diag.IncOp(comp, "error", "error")
	if code != diag.CodeUnknown {
		diag.IncError(comp, string(code))
	}
	if logger != nil {
		logger.ErrorWith(comp, string(code), msg+": "+err.Error(), nil, fileID, record)
	}
}

func sanity(c Components, s Settings) error {
	if c.Reader == nil || c.Decoder == nil || c.Writer == nil {
		return fmt.Errorf("%w: pipeline missing components", contract.ErrInvalidInput)
	}
	if len(s.Inputs) == 0 {
		return fmt.Errorf("%w: pipeline empty inputs", contract.ErrInvalidInput)
	}
	return nil
}
