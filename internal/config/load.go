package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 为环境变量覆盖前缀。
const EnvPrefix = "RUSMARC_"

// Defaults 返回带有安全默认值的 Config 雏形。
func Defaults() Config {
	return Config{
		Logging: Logging{Level: "info", Dir: "logs"},
		Components: Components{
			Reader:  "fs",
			Decoder: "rusmarc",
			Writer:  "fs",
		},
	}
}

// Format 为配置文件格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf 按扩展名判定格式；未知扩展名按 JSON 处理。
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadFile 读取配置文件，格式由扩展名决定。
func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(b, FormatOf(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse 解析原始配置文本。YAML/TOML 先归一化为 JSON，再走同一严格解码。
func Parse(raw []byte, format Format) (Config, error) {
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return Config{}, fmt.Errorf("yaml: %w", err)
		}
		return fromDocument(doc)
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(raw, &doc); err != nil {
			return Config{}, fmt.Errorf("toml: %w", err)
		}
		return fromDocument(doc)
	default:
		return LoadJSON("", raw)
	}
}

func fromDocument(doc any) (Config, error) {
	if doc == nil {
		return Config{}, nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return Config{}, fmt.Errorf("normalize: %w", err)
	}
	return LoadJSON("", b)
}

// LoadJSON 从文件路径或原始 JSON 解析 Config（严格拒绝未知字段）。
func LoadJSON(path string, raw []byte) (Config, error) {
	var cfg Config
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		r = f
	default:
		return cfg, errors.New("no config source provided")
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge 按优先级合并（后者覆盖前者）。
// 仅标量/字符串/原样 JSON 为“替换”；不做深度合并。
func Merge(base, over Config) Config {
	out := base
	if len(over.Inputs) > 0 {
		out.Inputs = cloneStrings(over.Inputs)
	}
	if over.KeepGoing != nil {
		v := *over.KeepGoing
		out.KeepGoing = &v
	}
	if strings.TrimSpace(over.MetricsFile) != "" {
		out.MetricsFile = strings.TrimSpace(over.MetricsFile)
	}
	if strings.TrimSpace(over.Logging.Level) != "" {
		out.Logging.Level = strings.TrimSpace(over.Logging.Level)
	}
	if strings.TrimSpace(over.Logging.Dir) != "" {
		out.Logging.Dir = strings.TrimSpace(over.Logging.Dir)
	}

	// 组件名（空不覆盖）
	if over.Components.Reader != "" {
		out.Components.Reader = over.Components.Reader
	}
	if over.Components.Decoder != "" {
		out.Components.Decoder = over.Components.Decoder
	}
	if over.Components.Writer != "" {
		out.Components.Writer = over.Components.Writer
	}

	// Options（完整替换对应键）
	if len(over.Options.Reader) > 0 {
		out.Options.Reader = cloneRaw(over.Options.Reader)
	}
	if len(over.Options.Decoder) > 0 {
		out.Options.Decoder = cloneRaw(over.Options.Decoder)
	}
	if len(over.Options.Writer) > 0 {
		out.Options.Writer = cloneRaw(over.Options.Writer)
	}
	return out
}

// EnvOverlay 从环境变量构建一个 Config 覆盖（仅解析有限键集合）。
// 规则：前缀 RUSMARC_；集合之外的键忽略。
// 支持：INPUTS, KEEP_GOING, METRICS_FILE, LOG_LEVEL, LOG_DIR, COMPONENTS_*, OPTIONS_*_JSON
func EnvOverlay(environ []string) (Config, error) {
	var over Config
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq <= len(EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(kv[:eq], EnvPrefix)
		val := strings.TrimSpace(kv[eq+1:])
		switch key {
		case "INPUTS":
			if val != "" {
				over.Inputs = splitComma(val)
			}
		case "KEEP_GOING":
			if val == "" {
				continue
			}
			b, err := strconv.ParseBool(val)
			if err != nil {
				return over, fmt.Errorf("%sKEEP_GOING: %w", EnvPrefix, err)
			}
			over.KeepGoing = &b
		case "METRICS_FILE":
			over.MetricsFile = val
		case "LOG_LEVEL":
			over.Logging.Level = val
		case "LOG_DIR":
			over.Logging.Dir = val
		case "COMPONENTS_READER":
			over.Components.Reader = val
		case "COMPONENTS_DECODER":
			over.Components.Decoder = val
		case "COMPONENTS_WRITER":
			over.Components.Writer = val
		case "OPTIONS_READER_JSON", "OPTIONS_DECODER_JSON", "OPTIONS_WRITER_JSON":
			// 原样 JSON；空值视为未设置
			if val == "" {
				continue
			}
			if !json.Valid([]byte(val)) {
				return over, fmt.Errorf("%s%s: invalid JSON", EnvPrefix, key)
			}
			raw := json.RawMessage(val)
			switch key {
			case "OPTIONS_READER_JSON":
				over.Options.Reader = raw
			case "OPTIONS_DECODER_JSON":
				over.Options.Decoder = raw
			default:
				over.Options.Writer = raw
			}
		}
	}
	return over, nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneRaw(in json.RawMessage) json.RawMessage {
	if len(in) == 0 {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}

func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
