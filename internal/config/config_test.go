package config

import (
	"encoding/json"
	"strings"
	"testing"
)

// 三种格式解析到同一配置
func TestLoadFileFormats(t *testing.T) {
	for _, name := range []string{"basic.json", "basic.yaml", "basic.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadFile("../../testdata/config/" + name)
			if err != nil {
				t.Fatalf("加载失败: %v", err)
			}
			if len(cfg.Inputs) != 1 || cfg.Inputs[0] != "dumps" {
				t.Fatalf("inputs 映射错误: %+v", cfg.Inputs)
			}
			if cfg.KeepGoing == nil || !*cfg.KeepGoing || cfg.Logging.Level != "debug" {
				t.Fatalf("标量映射错误: %+v", cfg)
			}
			if cfg.Components.Writer != "sqlite" {
				t.Fatalf("writer 期望 sqlite 实得 %s", cfg.Components.Writer)
			}
			var ro struct {
				Encoding  string   `json:"encoding"`
				AllowExts []string `json:"allow_exts"`
			}
			if err := json.Unmarshal(cfg.Options.Reader, &ro); err != nil || ro.Encoding != "cp1251" || len(ro.AllowExts) != 1 {
				t.Fatalf("reader options 错误: %s %v", cfg.Options.Reader, err)
			}
			if err := Validate(cfg); err != nil {
				t.Fatalf("校验失败: %v", err)
			}
		})
	}
}

// 扩展名判定
func TestFormatOf(t *testing.T) {
	cases := map[string]Format{"a.yml": FormatYAML, "a.YAML": FormatYAML, "a.toml": FormatTOML, "a.json": FormatJSON, "a": FormatJSON}
	for p, want := range cases {
		if got := FormatOf(p); got != want {
			t.Fatalf("%s: %s want %s", p, got, want)
		}
	}
}

// 未知字段在所有格式下都被拒绝
func TestUnknownFieldRejected(t *testing.T) {
	if _, err := LoadJSON("", []byte(`{"unknown":1}`)); err == nil {
		t.Fatalf("json 应当返回错误")
	}
	if _, err := Parse([]byte("unknown: 1\n"), FormatYAML); err == nil {
		t.Fatalf("yaml 应当返回错误")
	}
	if _, err := Parse([]byte("unknown = 1\n"), FormatTOML); err == nil {
		t.Fatalf("toml 应当返回错误")
	}
	if _, err := Parse([]byte("inputs = ["), FormatTOML); err == nil {
		t.Fatalf("toml 语法错误应当返回错误")
	}
	if _, err := LoadJSON("", nil); err == nil {
		t.Fatalf("无配置源应当返回错误")
	}
}

// ENV 覆盖部分字段
func TestEnvOverlay(t *testing.T) {
	env := []string{
		"RUSMARC_INPUTS=a, b",
		"RUSMARC_KEEP_GOING=true",
		"RUSMARC_LOG_LEVEL=warn",
		"RUSMARC_COMPONENTS_WRITER=sqlite",
		`RUSMARC_OPTIONS_WRITER_JSON={"path":"x.db"}`,
		"RUSMARC_UNKNOWN=1",
		"OTHER=1",
	}
	over, err := EnvOverlay(env)
	if err != nil {
		t.Fatalf("EnvOverlay 错误: %v", err)
	}
	if len(over.Inputs) != 2 || over.Inputs[1] != "b" || over.KeepGoing == nil || !*over.KeepGoing {
		t.Fatalf("覆盖结果不正确: %+v", over)
	}
	if over.Logging.Level != "warn" || over.Components.Writer != "sqlite" || string(over.Options.Writer) != `{"path":"x.db"}` {
		t.Fatalf("覆盖结果不正确: %+v", over)
	}
	if _, err := EnvOverlay([]string{"RUSMARC_KEEP_GOING=maybe"}); err == nil {
		t.Fatalf("非法布尔值应报错")
	}
	if _, err := EnvOverlay([]string{"RUSMARC_OPTIONS_READER_JSON={"}); err == nil {
		t.Fatalf("非法 JSON 应报错")
	}
}

// 合并优先级：后者覆盖前者，空值不覆盖
func TestMerge(t *testing.T) {
	no := false
	base := Defaults()
	base.Inputs = []string{"a"}
	over := Config{KeepGoing: &no, Components: Components{Writer: "sqlite"}, Options: Options{Writer: json.RawMessage(`{"path":"c.db"}`)}}
	out := Merge(base, over)
	if out.Components.Reader != "fs" || out.Components.Writer != "sqlite" || out.Inputs[0] != "a" {
		t.Fatalf("合并错误: %+v", out)
	}
	if out.KeepGoing == nil || *out.KeepGoing {
		t.Fatalf("显式 false 应覆盖")
	}
	over.Options.Writer[2] = 'X'
	if strings.Contains(string(out.Options.Writer), "X") {
		t.Fatalf("Options 未复制")
	}
}

// Validate 错误分支
func TestValidateErrors(t *testing.T) {
	if err := Validate(Config{}); err == nil {
		t.Fatal("空配置应失败")
	}
	cfg := DefaultTemplateConfig()
	cfg.Inputs = []string{"-", "a"}
	if err := Validate(cfg); err == nil {
		t.Fatal("混用 '-' 应失败")
	}
	cfg = DefaultTemplateConfig()
	cfg.Inputs = []string{" "}
	if err := Validate(cfg); err == nil {
		t.Fatal("空路径应失败")
	}
	cfg = DefaultTemplateConfig()
	cfg.Components.Writer = "s3"
	if err := Validate(cfg); err == nil {
		t.Fatal("未注册 writer 应失败")
	}
	cfg = DefaultTemplateConfig()
	cfg.Logging.Level = "trace"
	if err := Validate(cfg); err == nil {
		t.Fatal("未知日志级别应失败")
	}
}

// 模板可装配；三种格式渲染后可解析回同一配置
func TestTemplateRenderRoundTrip(t *testing.T) {
	tpl := DefaultTemplateConfig()
	if _, _, err := Assemble(tpl); err != nil {
		t.Fatalf("模板装配失败: %v", err)
	}
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		b, err := Render(tpl, f)
		if err != nil {
			t.Fatalf("%s render: %v", f, err)
		}
		got, err := Parse(b, f)
		if err != nil {
			t.Fatalf("%s parse: %v\n%s", f, err, b)
		}
		if got.Inputs[0] != "-" || got.Components != tpl.Components || got.Logging != tpl.Logging {
			t.Fatalf("%s 往返不一致: %+v", f, got)
		}
		if _, set, err := Assemble(got); err != nil || set.KeepGoing {
			t.Fatalf("%s 装配失败: %v", f, err)
		}
	}
	if _, err := Render(tpl, Format("ini")); err == nil {
		t.Fatalf("未知格式应报错")
	}
}

func TestSplitComma(t *testing.T) {
	parts := splitComma("a, b , ,c")
	if len(parts) != 3 || parts[1] != "b" {
		t.Fatalf("splitComma 结果错误: %v", parts)
	}
}
