package registry

import (
	"bytes"
	"encoding/json"

	"rusmarc/pkg/contract"
	"rusmarc/pkg/typed"
	drm "rusmarc/plugins/decoder/rusmarc"
	rfs "rusmarc/plugins/reader/filesystem"
	wfs "rusmarc/plugins/writer/filesystem"
	wsq "rusmarc/plugins/writer/sqlite"
)

// strictUnmarshal: 使用 DisallowUnknownFields 严格解码，拒绝未知字段。
func strictUnmarshal(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		// 保持零值（默认选项）
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// NewReader 工厂签名：接收原样 JSON Options。
type NewReader func(raw json.RawMessage) (contract.Reader, error)

// NewDecoder 工厂签名：接收原样 JSON Options。
type NewDecoder func(raw json.RawMessage) (contract.Decoder, error)

// NewWriter 工厂签名：接收原样 JSON Options。
type NewWriter func(raw json.RawMessage) (contract.Writer, error)

// Reader 工厂注册表（显式、零反射）。
var Reader = map[string]NewReader{
	// fs: 文件系统/STDIN Reader，可选字符集转码
	"fs": func(raw json.RawMessage) (contract.Reader, error) {
		var opts rfs.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return rfs.New(&opts)
	},
}

// Decoder 工厂注册表。
var Decoder = map[string]NewDecoder{
	// rusmarc: 分段 + 字段类型化 + 目录属性提取，使用内置字段表
	"rusmarc": func(raw json.RawMessage) (contract.Decoder, error) {
		var opts drm.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return drm.New(&opts, typed.Default()), nil
	},
}

// Writer 工厂注册表。
var Writer = map[string]NewWriter{
	// fs: 每个输入一个 JSON Lines 文件（原子替换可配置）
	"fs": func(raw json.RawMessage) (contract.Writer, error) {
		var opts wfs.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return wfs.New(&opts)
	},
	// sqlite: 导入 publications 表（按记录标识 upsert）；调用方负责 Close
	"sqlite": func(raw json.RawMessage) (contract.Writer, error) {
		var opts wsq.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return wsq.Open(&opts)
	},
}
