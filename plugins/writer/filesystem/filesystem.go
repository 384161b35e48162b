// Package filesystem 以 JSON Lines 形式按输入文件写出目录条目，每个输入对应一个输出文件。
package filesystem

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rusmarc/pkg/contract"
)

// Options: 文件系统 Writer 选项。
type Options struct {
	// OutputDir: 输出根目录（必需）。
	OutputDir string `json:"output_dir"`
	// Atomic: 是否使用原子替换（同目录临时文件 + rename）。nil 时默认 true。
	Atomic *bool `json:"atomic,omitempty"`
	// Flat: 是否扁平化输出（仅保留文件名）。nil 时默认 true。
	Flat *bool `json:"flat,omitempty"`
	// Ext: 输出扩展名，替换输入扩展名。默认 ".jsonl"。
	Ext string `json:"ext,omitempty"`
	// PermFile/PermDir: 可选权限；为 0 表示使用默认 0644/0755。
	PermFile os.FileMode `json:"perm_file,omitempty"`
	PermDir  os.FileMode `json:"perm_dir,omitempty"`
	// BufSize: 写缓冲区大小；<=0 使用默认 64KiB。
	BufSize int `json:"buf_size,omitempty"`
}

// FS 实现 contract.Writer。
type FS struct {
	root    string
	atomic  bool
	flat    bool
	ext     string
	permF   os.FileMode
	permD   os.FileMode
	bufSize int
}

// New 创建文件系统 Writer。OutputDir 为空时返回 ErrInvalidInput。
func New(opts *Options) (*FS, error) {
	if opts == nil || strings.TrimSpace(opts.OutputDir) == "" {
		return nil, fmt.Errorf("%w: output_dir required", contract.ErrInvalidInput)
	}
	w := &FS{root: opts.OutputDir, atomic: true, flat: true, ext: ".jsonl", permF: 0o644, permD: 0o755, bufSize: 64 * 1024}
	if opts.Atomic != nil {
		w.atomic = *opts.Atomic
	}
	if opts.Flat != nil {
		w.flat = *opts.Flat
	}
	if opts.Ext != "" {
		w.ext = opts.Ext
		if !strings.HasPrefix(w.ext, ".") {
			w.ext = "." + w.ext
		}
	}
	if opts.PermFile != 0 {
		w.permF = opts.PermFile
	}
	if opts.PermDir != 0 {
		w.permD = opts.PermDir
	}
	if opts.BufSize > 0 {
		w.bufSize = opts.BufSize
	}
	return w, nil
}

var _ contract.Writer = (*FS)(nil)

// Path 返回 id 映射到的输出路径。
func (w *FS) Path(id contract.FileID) (string, error) {
	dest, err := w.mapPath(id)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(dest, filepath.Ext(dest)) + w.ext, nil
}

// Begin 打开 id 对应的输出工件。原子模式下内容先写入同目录临时文件，Commit 时替换目标。
func (w *FS) Begin(ctx context.Context, id contract.FileID) (contract.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest, err := w.Path(id)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, w.permD); err != nil {
		return nil, err
	}

	a := &artifact{dest: dest, dir: dir, atomic: w.atomic}
	if w.atomic {
		a.f, err = os.CreateTemp(dir, ".tmp-*")
		if err == nil {
			// 目标权限：尽量与期望一致
			_ = os.Chmod(a.f.Name(), w.permF)
		}
	} else {
		a.f, err = os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, w.permF)
	}
	if err != nil {
		return nil, err
	}
	a.bw = bufio.NewWriterSize(a.f, w.bufSize)
	a.enc = json.NewEncoder(a.bw)
	a.enc.SetEscapeHTML(false)
	return a, nil
}

// mapPath: Clean + Join + 越界校验。
func (w *FS) mapPath(id contract.FileID) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(string(id)))
	if w.flat {
		rel = filepath.Base(rel)
		if rel == "." || rel == ".." || rel == "" || rel == string(filepath.Separator) {
			return "", contract.ErrPathInvalid
		}
		return filepath.Join(w.root, rel), nil
	}
	// 非扁平：禁止绝对路径、父级逃逸、Windows 卷名
	if rel == "." || rel == "" || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", contract.ErrPathInvalid
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", contract.ErrPathInvalid
	}
	return filepath.Join(w.root, rel), nil
}

// artifact 为单个输出文件；Put/Commit/Abort 由同一调用方顺序调用。
type artifact struct {
	dest   string
	dir    string
	atomic bool
	f      *os.File
	bw     *bufio.Writer
	enc    *json.Encoder
	done   bool
}

var errFinished = errors.New("artifact already finished")

func (a *artifact) Put(ctx context.Context, e contract.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.done {
		return errFinished
	}
	if err := a.enc.Encode(e); err != nil {
		return err
	}
	return nil
}

func (a *artifact) Commit() error {
	if a.done {
		return errFinished
	}
	a.done = true
	if err := a.bw.Flush(); err != nil {
		a.discard()
		return err
	}
	if err := a.f.Sync(); err != nil {
		a.discard()
		return err
	}
	if err := a.f.Close(); err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	if !a.atomic {
		return nil
	}
	// 平台特定的原子替换（或最佳努力）
	if err := osReplace(a.f.Name(), a.dest); err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	_ = syncDir(a.dir)
	return nil
}

// Abort 丢弃已写内容：原子模式删除临时文件，目标保持不变；非原子模式删除部分输出。
func (a *artifact) Abort() error {
	if a.done {
		return nil
	}
	a.done = true
	a.discard()
	return nil
}

func (a *artifact) discard() {
	_ = a.f.Close()
	_ = os.Remove(a.f.Name())
}
