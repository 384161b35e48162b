//go:build !windows

package filesystem

import (
	"errors"
	"testing"

	"rusmarc/pkg/contract"
)

// TestMapPathInvalidUnix Unix 平台路径校验
func TestMapPathInvalidUnix(t *testing.T) {
	dir := t.TempDir()
	flat := false
	w, _ := New(&Options{OutputDir: dir, Flat: &flat})
	cases := []string{"/abs", "..", "."} // Unix 下 /abs 为绝对路径
	for _, id := range cases {
		if _, err := w.mapPath(contract.FileID(id)); !errors.Is(err, contract.ErrPathInvalid) {
			t.Fatalf("id %s expect invalid", id)
		}
	}
}