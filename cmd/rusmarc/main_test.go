package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "rusmarc/internal/config"
	"rusmarc/internal/diag"
	"rusmarc/internal/pipeline"
	"rusmarc/pkg/contract"
)

const sampleDump = `#1: RU\NLR\BIBL\1
#5: 20230131120000.0
#10: ^a978-5-17-090000-1^d300 р.
#101: ^arus
#200: ^aВойна и мир^fЛ. Н. Толстой
#210: ^aМосква^cАСТ^d2023
*****
#1: RU\NLR\BIBL\2
#999: ^aлишнее
строка без номера
`

// sandbox 准备输入文件与隔离的日志目录。
func sandbox(t *testing.T) (dir, input string) {
	t.Helper()
	dir = t.TempDir()
	input = filepath.Join(dir, "in", "dump.txt")
	if err := os.MkdirAll(filepath.Dir(input), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(input, []byte(sampleDump), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RUSMARC_LOG_DIR", filepath.Join(dir, "logs"))
	return dir, input
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := execute(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

// 默认 fs writer：每个输入生成一个 JSON Lines 文件
func TestRunFSWriter(t *testing.T) {
	dir, input := sandbox(t)
	outDir := filepath.Join(dir, "out")
	t.Setenv("RUSMARC_OPTIONS_WRITER_JSON", `{"output_dir":"`+filepath.ToSlash(outDir)+`"}`)
	metrics := filepath.Join(dir, "rusmarc.prom")

	code, _, stderr := run(t, input, "--status=false", "--metrics-file", metrics)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	f, err := os.Open(filepath.Join(outDir, "dump.jsonl"))
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	defer f.Close()
	var entries []contract.Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e contract.Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("decode: %v", err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("expect 2 entries, got %d", len(entries))
	}
	if e := entries[0]; e.RecordID != `RU\NLR\BIBL\1` || e.Title != "Война и мир" || e.Date != "2023" || e.Publisher != "АСТ" {
		t.Fatalf("entry 0: %+v", e)
	}
	if e := entries[1]; e.Skipped != 1 || e.Malformed != 1 || e.Line != 8 {
		t.Fatalf("entry 1: %+v", e)
	}
	if _, err := os.Stat(metrics); err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs", "rusmarc-current.txt")); err != nil {
		t.Fatalf("log file: %v", err)
	}
}

// sqlite writer：配置文件选择 writer，CLI 旗标覆盖 keep-going
func TestRunSQLiteWriter(t *testing.T) {
	dir, input := sandbox(t)
	db := filepath.Join(dir, "catalog.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "components:\n  writer: sqlite\noptions:\n  writer:\n    path: " + filepath.ToSlash(db) + "\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := run(t, "--config", cfgPath, "--status=false", "--keep-going", input)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if fi, err := os.Stat(db); err != nil || fi.Size() == 0 {
		t.Fatalf("database not written: %v", err)
	}
}

// 配置文件不存在 → 3
func TestRunConfigFileNotFound(t *testing.T) {
	_, input := sandbox(t)
	if code, _, _ := run(t, "--config", "missing.json", input); code != exitConfig {
		t.Fatalf("expect %d, got %d", exitConfig, code)
	}
}

// 无输入 → 校验失败 3，并打印有效配置
func TestRunValidateError(t *testing.T) {
	sandbox(t)
	code, _, stderr := run(t, "--status=false")
	if code != exitConfig || !strings.Contains(stderr, "有效配置") {
		t.Fatalf("expect config error with dump, got %d: %s", code, stderr)
	}
}

// 组件选项非法 → 装配失败 3
func TestRunAssembleError(t *testing.T) {
	_, input := sandbox(t)
	t.Setenv("RUSMARC_OPTIONS_READER_JSON", `{"encoding":"ebcdic"}`)
	if code, _, _ := run(t, "--status=false", input); code != exitConfig {
		t.Fatalf("expect %d, got %d", exitConfig, code)
	}
}

// 运行期错误 → 1
func TestRunPipelineError(t *testing.T) {
	dir, input := sandbox(t)
	t.Setenv("RUSMARC_OPTIONS_WRITER_JSON", `{"output_dir":"`+filepath.ToSlash(filepath.Join(dir, "out"))+`"}`)
	old := pipelineRun
	defer func() { pipelineRun = old }()
	var got pipeline.Settings
	pipelineRun = func(ctx context.Context, c pipeline.Components, s pipeline.Settings, l *diag.Logger) (pipeline.Stats, error) {
		got = s
		return pipeline.Stats{}, errors.New("boom")
	}
	code, _, stderr := run(t, "--status=false", "--keep-going", input)
	if code != exitRuntime || !strings.Contains(stderr, "boom") {
		t.Fatalf("expect runtime error, got %d: %s", code, stderr)
	}
	if !got.KeepGoing || len(got.Inputs) != 1 {
		t.Fatalf("settings not propagated: %+v", got)
	}
}

// 未知旗标 → 3
func TestUnknownFlag(t *testing.T) {
	if code, _, _ := run(t, "--no-such-flag"); code != exitConfig {
		t.Fatalf("expect %d, got %d", exitConfig, code)
	}
}

// init-config 生成配置与 .env；再次生成不覆盖
func TestInitConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	code, stdout, _ := run(t, "init-config", dir)
	if code != exitOK || !strings.Contains(stdout, "config.json") {
		t.Fatalf("init-config: %d %s", code, stdout)
	}
	cfg, err := cfgpkg.LoadFile(filepath.Join(dir, "config.json"))
	if err != nil || cfg.Components.Decoder != "rusmarc" {
		t.Fatalf("generated config: %+v %v", cfg, err)
	}
	env, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err != nil || !strings.Contains(string(env), "RUSMARC_OPTIONS_WRITER_JSON=") {
		t.Fatalf(".env: %v", err)
	}
	if code, _, _ := run(t, "init-config", dir); code != exitConfig {
		t.Fatalf("existing config should not be overwritten, got %d", code)
	}
	if code, _, _ := run(t, "init-config", dir, "--format", "toml"); code != exitOK {
		t.Fatalf("toml alongside json should succeed, got %d", code)
	}
}

// init-config - 输出到 stdout
func TestInitConfigStdout(t *testing.T) {
	code, stdout, _ := run(t, "init-config", "-", "--format", "yaml")
	if code != exitOK || !strings.Contains(stdout, "decoder: rusmarc") {
		t.Fatalf("yaml to stdout: %d %q", code, stdout)
	}
	if code, _, _ := run(t, "init-config", "-", "--format", "ini"); code != exitConfig {
		t.Fatalf("unknown format should fail, got %d", code)
	}
}

// inspect 输出类型化字段与错误
func TestInspect(t *testing.T) {
	_, input := sandbox(t)
	code, stdout, stderr := run(t, "inspect", input)
	if code != exitOK {
		t.Fatalf("inspect: %d %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expect 2 records, got %d", len(lines))
	}
	var raw struct {
		Fields []struct {
			Number int    `json:"number"`
			Kind   string `json:"kind"`
		} `json:"fields"`
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw.Fields) != 6 || raw.Fields[0].Kind != "001.record_id" || len(raw.Errors) != 0 {
		t.Fatalf("record 0: %+v", raw)
	}
	if err := json.Unmarshal([]byte(lines[1]), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"line 10: no number present", "field 999: unknown field type"}
	if strings.Join(raw.Errors, "|") != strings.Join(want, "|") {
		t.Fatalf("record 1 errors: %v", raw.Errors)
	}

	code, stdout, _ = run(t, "inspect", "--entries", "--limit", "1", input)
	if code != exitOK || strings.Count(stdout, "\n") != 1 || !strings.Contains(stdout, `"record_id"`) {
		t.Fatalf("inspect --entries --limit: %d %q", code, stdout)
	}
	if code, _, _ := run(t, "inspect", filepath.Join(t.TempDir(), "missing.txt")); code != exitRuntime {
		t.Fatalf("missing input should be runtime error, got %d", code)
	}
}

// fields 列出内置字段
func TestFields(t *testing.T) {
	code, stdout, _ := run(t, "fields")
	if code != exitOK || !strings.Contains(stdout, "\n001 ") || !strings.Contains(stdout, "001.record_id") || !strings.Contains(stdout, "200.title") {
		t.Fatalf("fields: %d %q", code, stdout)
	}
	code, stdout, _ = run(t, "fields", "--json")
	var rows []map[string]any
	if code != exitOK || json.Unmarshal([]byte(stdout), &rows) != nil || len(rows) == 0 {
		t.Fatalf("fields --json: %d %q", code, stdout)
	}
}

// .env 解析：引号、转义、export 前缀，不覆盖已有变量
func TestLoadDotEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nexport RUSMARC_T_A=1\nRUSMARC_T_B=\"x\\ny\"\nRUSMARC_T_C='raw\\n'\nRUSMARC_T_D=keep\nbroken\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RUSMARC_T_D", "orig")
	for _, k := range []string{"RUSMARC_T_A", "RUSMARC_T_B", "RUSMARC_T_C"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	if err := loadDotEnv(p); err != nil {
		t.Fatalf("load: %v", err)
	}
	if os.Getenv("RUSMARC_T_A") != "1" || os.Getenv("RUSMARC_T_B") != "x\ny" || os.Getenv("RUSMARC_T_C") != `raw\n` || os.Getenv("RUSMARC_T_D") != "orig" {
		t.Fatalf("unexpected env: %q %q %q %q", os.Getenv("RUSMARC_T_A"), os.Getenv("RUSMARC_T_B"), os.Getenv("RUSMARC_T_C"), os.Getenv("RUSMARC_T_D"))
	}
	if err := loadDotEnv(filepath.Join(t.TempDir(), "none")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}
