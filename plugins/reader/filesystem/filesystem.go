package filesystem

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"rusmarc/pkg/contract"
)

// Options 为 FileSystem Reader 的可选配置。
type Options struct {
	// BufSize 为读缓冲区大小（字节）。默认 64KiB。
	BufSize int `json:"buf_size"`
	// ExcludeDirNames: 扫描目录时跳过这些目录名（基名，大小写不敏感）。
	// 仅影响目录递归，不影响单文件 root。
	ExcludeDirNames []string `json:"exclude_dir_names"`
	// AllowExts: 目录扫描时只处理这些扩展名（含点，大小写不敏感）。为空不限制。
	AllowExts []string `json:"allow_exts"`
	// Encoding: 输入字符集。空或 "utf-8" 时按 UTF-8 读取并去除 BOM；
	// 另支持 cp1251 / koi8-r / cp866 / iso-8859-5。
	Encoding string `json:"encoding"`
}

// FileSystem 实现基于文件系统与 STDIN 的 Reader。
type FileSystem struct {
	bufSize    int
	excludeDir map[string]struct{}
	allow      map[string]struct{}
	enc        encoding.Encoding
}

var encodings = map[string]encoding.Encoding{
	"":             unicode.UTF8BOM,
	"utf-8":        unicode.UTF8BOM,
	"utf8":         unicode.UTF8BOM,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"koi8r":        charmap.KOI8R,
	"cp866":        charmap.CodePage866,
	"ibm866":       charmap.CodePage866,
	"iso-8859-5":   charmap.ISO8859_5,
}

// Encodings 返回支持的字符集名称（排序）。
func Encodings() []string {
	out := make([]string, 0, len(encodings))
	for k := range encodings {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// New 创建 FileSystem Reader。未知字符集返回 ErrInvalidInput。
func New(opts *Options) (*FileSystem, error) {
	const defaultBuf = 64 * 1024
	r := &FileSystem{bufSize: defaultBuf, excludeDir: map[string]struct{}{}}
	if opts == nil {
		opts = &Options{}
	}
	if opts.BufSize > 0 {
		r.bufSize = opts.BufSize
	}
	for _, name := range opts.ExcludeDirNames {
		if name != "" {
			r.excludeDir[strings.ToLower(name)] = struct{}{}
		}
	}
	if len(opts.AllowExts) > 0 {
		r.allow = make(map[string]struct{}, len(opts.AllowExts))
		for _, e := range opts.AllowExts {
			if e != "" {
				r.allow[strings.ToLower(e)] = struct{}{}
			}
		}
	}
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(opts.Encoding))]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported encoding %q", contract.ErrInvalidInput, opts.Encoding)
	}
	r.enc = enc
	return r, nil
}

// Iterate 遍历 roots，按稳定顺序对每个常规文件调用 yield。
// roots 为空或仅含 "-" 时读取 STDIN。yield 返回后由 Reader 关闭输入。
func (r *FileSystem) Iterate(ctx context.Context, roots []string, yield func(fileID contract.FileID, rc io.ReadCloser) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(roots) == 0 || (len(roots) == 1 && roots[0] == "-") {
		return r.emit("stdin", io.NopCloser(os.Stdin), yield)
	}
	for _, s := range roots {
		if s == "-" {
			return errors.New("stdin '-' cannot be mixed with other roots")
		}
	}
	for _, root := range roots {
		if err := r.iterateOne(ctx, root, yield); err != nil {
			return err
		}
	}
	return nil
}

func (r *FileSystem) iterateOne(ctx context.Context, root string, yield func(contract.FileID, io.ReadCloser) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if info.IsDir() {
		// 目录符号链接作为 root 不跟随
		if l, err := os.Lstat(root); err == nil && l.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		return r.walkDir(ctx, root, yield)
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	return r.openFile(root, yield)
}

func (r *FileSystem) walkDir(ctx context.Context, dir string, yield func(contract.FileID, io.ReadCloser) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	// 稳定顺序：先目录后文件，各自按字典序
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if _, skip := r.excludeDir[strings.ToLower(e.Name())]; skip {
				continue
			}
			if err := r.walkDir(ctx, p, yield); err != nil {
				return err
			}
			continue
		}
		if r.allow != nil {
			if _, ok := r.allow[strings.ToLower(path.Ext(e.Name()))]; !ok {
				continue
			}
		}
		// 符号链接只跟随到常规文件
		t, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !t.Mode().IsRegular() {
			continue
		}
		if err := r.openFile(p, yield); err != nil {
			return err
		}
	}
	return nil
}

func (r *FileSystem) openFile(p string, yield func(contract.FileID, io.ReadCloser) error) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	return r.emit(contract.NormalizeFileID(p), f, yield)
}

// emit 包装字符集解码与缓冲后交给 yield，并保证关闭。
func (r *FileSystem) emit(id contract.FileID, f io.ReadCloser, yield func(contract.FileID, io.ReadCloser) error) error {
	rc := &decodedCloser{
		Reader: bufio.NewReaderSize(transform.NewReader(f, r.enc.NewDecoder()), r.bufSize),
		c:      f,
	}
	err := yield(id, rc)
	if cerr := rc.Close(); err == nil && cerr != nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}

// decodedCloser 把解码后的缓冲读取器与底层 Closer 组合为 ReadCloser；重复 Close 安全。
type decodedCloser struct {
	*bufio.Reader
	c      io.Closer
	closed bool
}

func (d *decodedCloser) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.c.Close()
}
