package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "rusmarc/internal/config"
	"rusmarc/internal/diag"
	"rusmarc/internal/pipeline"
)

var pipelineRun = pipeline.Run

// 退出码：0 成功；1 运行期错误；3 配置/参数错误。
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 3
)

// exitError 携带退出码。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configErr(err error) error  { return &exitError{code: exitConfig, err: err} }
func runtimeErr(err error) error { return &exitError{code: exitRuntime, err: err} }

func main() {
	// 在任何 ENV 读取前，尝试加载工作目录下的 .env（不覆盖已有 ENV）。
	_ = loadDotEnv(".env")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute 运行命令行并返回退出码。
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "错误: %v\n", ee.err)
		}
		return ee.code
	}
	// cobra 自身的参数/旗标错误
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return exitConfig
}

type runFlags struct {
	config      string
	reader      string
	writer      string
	keepGoing   bool
	metricsFile string
	logLevel    string
	status      bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f runFlags
	root := &cobra.Command{
		Use:   "rusmarc [roots...]",
		Short: "RUSMARC 文本转储解码与目录导入",
		Long: `rusmarc 读取 RUSMARC 文本转储（文件、目录或 "-" 表示 STDIN），
按记录解码并类型化字段，将目录条目写出为 JSON Lines 或导入 SQLite。

优先级：CLI 旗标 > 环境变量（RUSMARC_*，含 .env）> 配置文件 > 默认值。`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, f, args, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	fl := root.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "配置文件（.json/.yaml/.toml）；缺省读取 ./config.json（若存在）")
	fl.StringVar(&f.reader, "reader", "", "reader 组件名（覆盖配置）")
	fl.StringVar(&f.writer, "writer", "", "writer 组件名：fs | sqlite（覆盖配置）")
	fl.BoolVar(&f.keepGoing, "keep-going", false, "单个文件失败时继续处理其余文件")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "运行结束后写出 Prometheus textfile")
	fl.StringVar(&f.logLevel, "log-level", "", "日志级别 debug|info|warn|error（覆盖配置）")
	fl.BoolVar(&f.status, "status", true, "终端状态提示（stderr）")

	root.AddCommand(newInspectCmd(stdout), newFieldsCmd(stdout), newInitConfigCmd(stdout, stderr))
	return root
}

// loadConfig 按 默认 < 文件 < ENV < CLI 合并配置。
func loadConfig(cmd *cobra.Command, f runFlags, roots []string) (cfgpkg.Config, error) {
	path := f.config
	if path == "" {
		path = os.Getenv(cfgpkg.EnvPrefix + "CONFIG_FILE")
	}
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	cfg := cfgpkg.Defaults()
	if path != "" {
		base, err := cfgpkg.LoadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("配置解析失败: %w", err)
		}
		cfg = cfgpkg.Merge(cfg, base)
	}

	overEnv, err := cfgpkg.EnvOverlay(os.Environ())
	if err != nil {
		return cfg, fmt.Errorf("环境变量解析失败: %w", err)
	}
	cfg = cfgpkg.Merge(cfg, overEnv)

	var overCLI cfgpkg.Config
	overCLI.Inputs = roots
	overCLI.Components.Reader = f.reader
	overCLI.Components.Writer = f.writer
	overCLI.MetricsFile = f.metricsFile
	overCLI.Logging.Level = f.logLevel
	if cmd.Flags().Changed("keep-going") {
		overCLI.KeepGoing = &f.keepGoing
	}
	return cfgpkg.Merge(cfg, overCLI), nil
}

func runPipeline(cmd *cobra.Command, f runFlags, roots []string, stderr io.Writer) error {
	start := time.Now()
	cfg, err := loadConfig(cmd, f, roots)
	if err != nil {
		return configErr(err)
	}
	if err := cfgpkg.Validate(cfg); err != nil {
		dumpConfig(stderr, cfg)
		return configErr(fmt.Errorf("配置校验失败: %w", err))
	}

	logger := diag.NewLogger(diag.NewCorrID(), cfg.Logging.Level, cfg.Logging.Dir)
	defer logger.Close()

	comp, set, err := cfgpkg.Assemble(cfg)
	if err != nil {
		logger.Error("pipeline", string(diag.Classify(err)), "assemble failed: "+err.Error(), &start)
		return configErr(fmt.Errorf("装配失败: %w", err))
	}
	if c, ok := comp.Writer.(io.Closer); ok {
		defer c.Close()
	}

	term := diag.NewTerminal(stderr, f.status)
	diag.SetTerminal(term)
	defer diag.SetTerminal(nil)
	term.RunStart(cfg.Components.Writer)

	logger.DebugKV("config", "effective", "", "", map[string]string{
		"inputs_count": fmt.Sprintf("%d", len(cfg.Inputs)),
		"reader":       cfg.Components.Reader,
		"decoder":      cfg.Components.Decoder,
		"writer":       cfg.Components.Writer,
		"keep_going":   fmt.Sprintf("%t", set.KeepGoing),
	})

	t := logger.Start("pipeline", "run")
	st, err := pipelineRun(cmd.Context(), comp, set, logger)
	writeMetrics(cfg.MetricsFile, logger)
	if err != nil {
		code := string(diag.Classify(err))
		logger.Error("pipeline", code, "first error: "+err.Error(), &start)
		diag.IncOp("pipeline", "error", "error")
		if code != string(diag.CodeUnknown) {
			diag.IncError("pipeline", code)
		}
		term.RunFinish(false, time.Since(start))
		return runtimeErr(fmt.Errorf("运行失败: %w", err))
	}
	t.Finish("run", int64(st.Records))
	diag.IncOp("pipeline", "finish", "success")
	diag.ObserveDuration("pipeline", "finish", time.Since(start).Milliseconds())
	term.RunFinish(true, time.Since(start))
	return nil
}

// writeMetrics 写出 textfile；失败仅记录日志，不影响退出码。
func writeMetrics(path string, logger *diag.Logger) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := diag.WriteTextfile(path); err != nil {
		logger.Error("metrics", string(diag.Classify(err)), "write textfile failed: "+err.Error(), nil)
	}
}

func dumpConfig(w io.Writer, c cfgpkg.Config) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(w, "有效配置:\n%s\n", b)
}
