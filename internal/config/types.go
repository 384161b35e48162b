package config

import (
	"encoding/json"
)

// Config: 运行期只读配置（一次解析，运行期不变）。
// 键使用 snake_case；未知字段在解析期失败。
type Config struct {
	Inputs []string `json:"inputs"`
	// KeepGoing: 单个文件失败时继续处理其余文件。nil 表示未设置。
	KeepGoing *bool `json:"keep_going,omitempty"`
	// MetricsFile: 运行结束时写出 Prometheus textfile 的路径；空则不写。
	MetricsFile string  `json:"metrics_file,omitempty"`
	Logging     Logging `json:"logging"`

	// 组件名选择（空则使用默认名）。
	Components Components `json:"components"`

	// 各组件 Options 子树，原样 JSON 传入工厂。
	Options Options `json:"options"`
}

// Logging: 日志等级与目录；轮转策略为固定默认。
type Logging struct {
	Level string `json:"level"`
	Dir   string `json:"dir,omitempty"`
}

// Components: 组件名选择（注册表中的实现名）。
type Components struct {
	Reader  string `json:"reader"`
	Decoder string `json:"decoder"`
	Writer  string `json:"writer"`
}

// Options: 各组件的原样 JSON Options。
type Options struct {
	Reader  json.RawMessage `json:"reader,omitempty"`
	Decoder json.RawMessage `json:"decoder,omitempty"`
	Writer  json.RawMessage `json:"writer,omitempty"`
}
