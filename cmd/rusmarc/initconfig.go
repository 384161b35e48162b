package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "rusmarc/internal/config"
)

func newInitConfigCmd(stdout, stderr io.Writer) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "init-config [dir]",
		Short: "在目录中生成默认配置与 .env 模板（已存在则跳过，不覆盖）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = strings.TrimSpace(args[0])
			}
			return initConfig(dir, cfgpkg.Format(strings.ToLower(format)), stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "配置格式：json | yaml | toml；dir 为 - 时输出到 stdout")
	return cmd
}

func initConfig(dir string, format cfgpkg.Format, stdout, stderr io.Writer) error {
	b, err := cfgpkg.Render(cfgpkg.DefaultTemplateConfig(), format)
	if err != nil {
		return configErr(err)
	}
	if dir == "-" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return configErr(fmt.Errorf("生成默认配置失败: %w", err))
	}
	path := filepath.Join(dir, "config."+string(format))
	if err := writeNew(path, b); err != nil {
		return configErr(fmt.Errorf("生成默认配置失败: %w", err))
	}
	fmt.Fprintf(stdout, "已生成 %s\n", path)
	if err := writeDotEnv(filepath.Join(dir, ".env")); err != nil {
		fmt.Fprintf(stderr, "提示：.env 生成失败（已跳过）：%v\n", err)
	}
	return nil
}

// writeNew 创建文件；已存在时报错（不覆盖）。
func writeNew(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeDotEnv 生成 .env 模板（若文件已存在则跳过）。
func writeDotEnv(path string) error {
	var b strings.Builder
	b.WriteString("# rusmarc .env 模板（由 init-config 生成）\n")
	b.WriteString("# 优先级：CLI > ENV(.env) > 配置文件\n")
	b.WriteString("# 空值表示未设置。\n\n")

	b.WriteString("# 配置来源\n")
	b.WriteString("RUSMARC_CONFIG_FILE=\n\n")

	b.WriteString("# 运行参数覆盖\n")
	b.WriteString("RUSMARC_INPUTS=\n")
	b.WriteString("RUSMARC_KEEP_GOING=\n")
	b.WriteString("RUSMARC_METRICS_FILE=\n")
	b.WriteString("RUSMARC_LOG_LEVEL=\n")
	b.WriteString("RUSMARC_LOG_DIR=\n\n")

	b.WriteString("# 组件选择\n")
	b.WriteString("RUSMARC_COMPONENTS_READER=\n")
	b.WriteString("RUSMARC_COMPONENTS_DECODER=\n")
	b.WriteString("RUSMARC_COMPONENTS_WRITER=\n\n")

	b.WriteString("# 组件 Options（原样 JSON）\n")
	b.WriteString("RUSMARC_OPTIONS_READER_JSON=\n")
	b.WriteString("RUSMARC_OPTIONS_DECODER_JSON=\n")
	b.WriteString("RUSMARC_OPTIONS_WRITER_JSON=\n")

	err := writeNew(path, []byte(b.String()))
	if os.IsExist(err) {
		return nil
	}
	return err
}

// loadDotEnv 读取简单的 .env 文件格式并注入进程环境。
// 规则：
// - 忽略不存在的文件；
// - 跳过空行与以 # 开头的行；支持可选的前缀 "export "；
// - 仅按首个 '=' 分割，key/value 去首尾空白；
// - 成对单/双引号去除；双引号内处理 \n \t \r \" \\ 转义；
// - 不覆盖已存在的环境变量。
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, val, ok := strings.Cut(line, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" {
			continue
		}
		val = unquote(val)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
	return s.Err()
}

func unquote(val string) string {
	if len(val) < 2 {
		return val
	}
	q := val[0]
	if (q != '\'' && q != '"') || val[len(val)-1] != q {
		return val
	}
	val = val[1 : len(val)-1]
	if q == '"' {
		val = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r", `\"`, `"`, `\\`, `\`).Replace(val)
	}
	return val
}
