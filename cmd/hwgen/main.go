package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/hwgen/internal/config"
	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/logging"
)

const (
	Version = "0.1.0"
)

// 全局参数
var (
	configPath string
	logLevel   string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		printErrors(err)
		os.Exit(1)
	}
}

// printErrors 输出错误；内部缺陷使用诊断格式
func printErrors(err error) {
	f := errors.NewFormatter()
	for _, e := range multierr.Errors(err) {
		var ie *errors.InternalError
		if stderrors.As(e, &ie) {
			fmt.Fprint(os.Stderr, f.FormatInternalError(ie))
			continue
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", errors.BoldRed("error:"), e)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hwgen",
		Short:         "ARM64 hardware intrinsic code generator",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to "+config.ConfigFileName+" (searched upwards from the input when omitted)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug|info|warn|error)")

	root.AddCommand(
		newCompileCommand(),
		newTableCommand(),
		newFeaturesCommand(),
	)
	return root
}

// loadConfig 读取配置：显式路径 > 从 start 向上查找 > 默认配置
func loadConfig(start string) (*config.Config, error) {
	path := configPath
	if path == "" && start != "" {
		path = config.FindConfigFile(start)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger 按配置创建日志记录器
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
