package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultTemplateConfig 返回一个“可运行”的默认配置模板：
// 输入为 STDIN（"-"），Writer 输出 JSON Lines 到 ./out；选项给出全部键与中性默认值。
func DefaultTemplateConfig() Config {
	d := Defaults()
	keep := false
	cfg := Config{
		Inputs:     []string{"-"},
		KeepGoing:  &keep,
		Logging:    d.Logging,
		Components: d.Components,
	}
	cfg.Options.Reader = json.RawMessage(`{
  "buf_size": 65536,
  "exclude_dir_names": [".git", "node_modules", "vendor"],
  "allow_exts": [".txt", ".mrc"],
  "encoding": "utf-8"
}`)
	cfg.Options.Decoder = json.RawMessage(`{
  "max_record_bytes": 0,
  "skip_empty": false
}`)
	cfg.Options.Writer = json.RawMessage(`{
  "output_dir": "out",
  "atomic": true,
  "flat": true,
  "ext": ".jsonl",
  "buf_size": 65536
}`)
	return cfg
}

// Render 以指定格式序列化配置。YAML/TOML 经由 JSON 文档转换，保证键名一致。
func Render(cfg Config, format Format) ([]byte, error) {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return append(b, '\n'), nil
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}
