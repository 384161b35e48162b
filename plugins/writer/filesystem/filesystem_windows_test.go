//go:build windows

package filesystem

import (
	"errors"
	"testing"

	"rusmarc/pkg/contract"
)

// TestMapPathInvalidWindows Windows 平台路径校验
func TestMapPathInvalidWindows(t *testing.T) {
	dir := t.TempDir()
	flat := false
	w, _ := New(&Options{OutputDir: dir, Flat: &flat})
	cases := []string{"C:\\abs", "..", "."} // C:\abs is absolute on Windows
	for _, id := range cases {
		if _, err := w.mapPath(contract.FileID(id)); !errors.Is(err, contract.ErrPathInvalid) {
			t.Fatalf("id %s expect invalid", id)
		}
	}
}