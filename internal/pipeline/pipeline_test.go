package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"rusmarc/pkg/contract"
	"rusmarc/pkg/typed"
	drm "rusmarc/plugins/decoder/rusmarc"
)

// 通用桩件 ----------------------------------------------------
type stubReader struct {
	files map[contract.FileID]string
	order []contract.FileID
}

func (r stubReader) Iterate(ctx context.Context, roots []string, yield func(contract.FileID, io.ReadCloser) error) error {
	for _, id := range r.order {
		if err := yield(id, io.NopCloser(strings.NewReader(r.files[id]))); err != nil {
			return err
		}
	}
	return nil
}

// stubDecoder 每个非空行产出一条条目；内容为 "fail" 的文件返回错误。
type stubDecoder struct{}

func (stubDecoder) Decode(ctx context.Context, fid contract.FileID, r io.Reader, yield func(contract.Entry) error) error {
	b, _ := io.ReadAll(r)
	if string(b) == "fail" {
		return contract.ErrRecordTooLarge
	}
	for i, line := range strings.Fields(string(b)) {
		e := contract.Entry{FileID: fid, Index: int64(i), RecordID: line, Fields: 1}
		if strings.HasPrefix(line, "bad") {
			e.Skipped = 1
			e.Errors = []string{"field 999: unknown field type"}
		}
		if err := yield(e); err != nil {
			return err
		}
	}
	return nil
}

type memWriter struct {
	committed map[contract.FileID][]string
	aborted   []contract.FileID
	failPut   string
}

type memArtifact struct {
	w   *memWriter
	id  contract.FileID
	buf []string
}

func (w *memWriter) Begin(ctx context.Context, id contract.FileID) (contract.Artifact, error) {
	if w.committed == nil {
		w.committed = map[contract.FileID][]string{}
	}
	return &memArtifact{w: w, id: id}, nil
}

func (a *memArtifact) Put(ctx context.Context, e contract.Entry) error {
	if e.RecordID == a.w.failPut {
		return errors.New("disk full")
	}
	a.buf = append(a.buf, e.RecordID)
	return nil
}

func (a *memArtifact) Commit() error { a.w.committed[a.id] = a.buf; return nil }

func (a *memArtifact) Abort() error { a.w.aborted = append(a.w.aborted, a.id); return nil }

func reader(pairs ...string) stubReader {
	r := stubReader{files: map[contract.FileID]string{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		id := contract.FileID(pairs[i])
		r.order = append(r.order, id)
		r.files[id] = pairs[i+1]
	}
	return r
}

// 正常流程：逐文件提交，统计汇总
func TestRunCommitsPerFile(t *testing.T) {
	w := &memWriter{}
	comp := Components{Reader: reader("a", "r1 bad2", "b", "r3"), Decoder: stubDecoder{}, Writer: w}
	st, err := Run(context.Background(), comp, Settings{Inputs: []string{"x"}}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.Join(w.committed["a"], ","); got != "r1,bad2" {
		t.Fatalf("file a: %s", got)
	}
	if len(w.committed["b"]) != 1 || len(w.aborted) != 0 {
		t.Fatalf("unexpected writer state: %+v", w)
	}
	want := Stats{Files: 2, Records: 3, Partial: 1, Fields: 3, Skipped: 1}
	if st != want {
		t.Fatalf("stats %+v want %+v", st, want)
	}
}

// 首错即停：失败文件被 Abort，后续文件不处理
func TestRunStopsOnFirstError(t *testing.T) {
	w := &memWriter{}
	comp := Components{Reader: reader("a", "fail", "b", "r1"), Decoder: stubDecoder{}, Writer: w}
	st, err := Run(context.Background(), comp, Settings{Inputs: []string{"x"}}, nil)
	if !errors.Is(err, contract.ErrRecordTooLarge) {
		t.Fatalf("expect decode error, got %v", err)
	}
	if len(w.aborted) != 1 || w.aborted[0] != "a" || len(w.committed) != 0 {
		t.Fatalf("unexpected writer state: %+v", w)
	}
	if st.Files != 1 || st.Failed != 1 {
		t.Fatalf("stats %+v", st)
	}
}

// KeepGoing：失败文件跳过，其余照常提交，最后汇总错误
func TestRunKeepGoing(t *testing.T) {
	w := &memWriter{failPut: "boom"}
	comp := Components{Reader: reader("a", "fail", "b", "r1 boom", "c", "r2"), Decoder: stubDecoder{}, Writer: w}
	st, err := Run(context.Background(), comp, Settings{Inputs: []string{"x"}, KeepGoing: true}, nil)
	if err == nil || !errors.Is(err, contract.ErrRecordTooLarge) || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expect joined error, got %v", err)
	}
	if len(w.committed) != 1 || len(w.committed["c"]) != 1 {
		t.Fatalf("only c should be committed: %+v", w.committed)
	}
	if st.Files != 3 || st.Failed != 2 {
		t.Fatalf("stats %+v", st)
	}
}

// 缺少组件或输入
func TestRunSanity(t *testing.T) {
	if _, err := Run(context.Background(), Components{}, Settings{Inputs: []string{"x"}}, nil); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("expect invalid input, got %v", err)
	}
	comp := Components{Reader: reader(), Decoder: stubDecoder{}, Writer: &memWriter{}}
	if _, err := Run(context.Background(), comp, Settings{}, nil); !errors.Is(err, contract.ErrInvalidInput) {
		t.Fatalf("expect invalid input for empty inputs, got %v", err)
	}
}

// 真实解码器：字段级错误计入 Skipped，分词失败计入 Malformed
func TestRunWithRusmarcDecoder(t *testing.T) {
	dump := "#1: RU\\NLR\\1\n#200: ^aЗаглавие\n#999: ^ax\n*****\n#1: RU\\NLR\\2\nnot a field\n"
	w := &memWriter{}
	comp := Components{Reader: reader("dump.txt", dump), Decoder: drm.New(nil, typed.Default()), Writer: w}
	st, err := Run(context.Background(), comp, Settings{Inputs: []string{"dump.txt"}}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.Join(w.committed["dump.txt"], ","); got != `RU\NLR\1,RU\NLR\2` {
		t.Fatalf("records: %s", got)
	}
	if st.Records != 2 || st.Skipped != 1 || st.Malformed != 1 || st.Partial != 2 || st.Fields != 3 {
		t.Fatalf("stats %+v", st)
	}
}
