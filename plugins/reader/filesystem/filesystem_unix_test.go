//go:build !windows

package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"rusmarc/pkg/contract"
)

// 非常规文件（FIFO）被忽略
func TestWalkDirNonRegular(t *testing.T) {
	root := t.TempDir()
	if err := syscall.Mkfifo(filepath.Join(root, "dump.txt"), 0o644); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}
	if got := collect(t, mustNew(t, nil), []string{root}); len(got) != 0 {
		t.Fatalf("non-regular should skip, got %#v", got)
	}
}

// 作为 root 的目录符号链接不跟随
func TestIterateSymlinkDir(t *testing.T) {
	root := t.TempDir()
	realDir := filepath.Join(root, "real")
	os.Mkdir(realDir, 0o755)
	os.WriteFile(filepath.Join(realDir, "a.txt"), []byte("#1: a\n"), 0o644)
	link := filepath.Join(root, "ln")
	if err := os.Symlink(realDir, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if got := collect(t, mustNew(t, nil), []string{link}); len(got) != 0 {
		t.Fatalf("dir symlink visited: %#v", got)
	}
}

// 遍历时忽略指向目录的符号链接，避免重复读取
func TestWalkDirSymlinkDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	os.Mkdir(sub, 0o755)
	os.WriteFile(filepath.Join(sub, "ok.txt"), []byte("#1: ok\n"), 0o644)
	if err := os.Symlink(sub, filepath.Join(root, "sub_link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	got := collect(t, mustNew(t, nil), []string{root})
	if len(got) != 1 || got[contract.NormalizeFileID(filepath.Join(sub, "ok.txt"))] != "#1: ok\n" {
		t.Fatalf("unexpected files %#v", got)
	}
}

// 失效的符号链接作为 root 返回错误
func TestIterateSymlinkDangling(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling.txt")
	if err := os.Symlink(filepath.Join(dir, "no"), link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	err := mustNew(t, nil).Iterate(context.Background(), []string{link}, func(contract.FileID, io.ReadCloser) error { return nil })
	if err == nil {
		t.Fatalf("expect error for dangling symlink")
	}
}
