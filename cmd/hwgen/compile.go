package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tangzhangming/hwgen/internal/jit"
	"github.com/tangzhangming/hwgen/internal/loader"
	"github.com/tangzhangming/hwgen/internal/output"
)

func newCompileCommand() *cobra.Command {
	var format string
	var install bool

	cmd := &cobra.Command{
		Use:   "compile <method.toml|dir>...",
		Short: "Compile intrinsic methods to ARM64 machine code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			return runCompile(cmd, args, f, install)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatText), "output format (text|disasm|hex|json)")
	cmd.Flags().BoolVar(&install, "install", false, "install the compiled code into executable memory and report its address")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string, format output.Format, install bool) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	jitConfig, err := cfg.JITConfig()
	if err != nil {
		return err
	}

	methods, err := loadMethods(args)
	if err != nil {
		return err
	}

	compiler := jit.NewCompiler(jitConfig, log)
	compiled, err := compiler.CompileAll(methods)

	// 成功编译的方法照常输出，错误合并后返回
	var ok []*jit.CompiledMethod
	for _, m := range compiled {
		if m != nil {
			ok = append(ok, m)
		}
	}
	if werr := output.Write(cmd.OutOrStdout(), format, ok); werr != nil {
		return werr
	}

	if install {
		err = multierr.Append(err, installMethods(cmd.ErrOrStderr(), jit.NewCodeCache(cfg.Codegen.CodeCacheSize, log), ok))
	}
	return err
}

// installMethods 把编译结果装入可执行内存，完成后释放
func installMethods(w io.Writer, cache *jit.CodeCache, methods []*jit.CompiledMethod) (err error) {
	defer func() {
		err = multierr.Append(err, cache.Clear())
	}()

	for _, m := range methods {
		im, ierr := cache.Install(m)
		if ierr != nil {
			err = multierr.Append(err, ierr)
			continue
		}
		fmt.Fprintf(w, "installed %s at %#x (%d bytes)\n", im.Name, im.Addr, im.Size)
	}
	return err
}

// loadMethods 加载文件或目录中的方法
func loadMethods(paths []string) ([]*jit.Method, error) {
	var methods []*jit.Method
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if info.IsDir() {
			ms, err := loader.LoadDir(path)
			if err != nil {
				return nil, err
			}
			methods = append(methods, ms...)
			continue
		}

		m, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}
