// Package config 实现 hwgen.toml 配置文件的读写与校验
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"golang.org/x/sys/cpu"

	"github.com/tangzhangming/hwgen/internal/jit"
)

// 常量定义
const (
	ConfigFileName = "hwgen.toml" // 配置文件名
	AutoISA        = "auto"       // 按主机特性启用指令集

	DefaultCodeCacheSize = 1 << 20
)

// Config 配置
type Config struct {
	Codegen CodegenConfig `toml:"codegen"`
	Log     LogConfig     `toml:"log"`
}

// CodegenConfig 代码生成配置
type CodegenConfig struct {
	// ISAs 启用的指令集名，或 ["auto"]
	ISAs []string `toml:"isas"`

	// Allocate 是否为虚拟值运行寄存器分配
	Allocate bool `toml:"allocate"`

	// CodeCacheSize 装入可执行内存的机器码上限（字节）
	CodeCacheSize int `toml:"code_cache_size"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // console|json
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Codegen: CodegenConfig{
			ISAs:          []string{AutoISA},
			Allocate:      true,
			CodeCacheSize: DefaultCodeCacheSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load 从文件加载配置，未出现的字段保留默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	content := generateConfigWithComments(c)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateConfigWithComments 生成带注释的配置文件内容
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	isas := make([]string, len(c.Codegen.ISAs))
	for i, isa := range c.Codegen.ISAs {
		isas[i] = fmt.Sprintf("%q", isa)
	}

	sb.WriteString("[codegen]\n")
	sb.WriteString("# 启用的指令集（\"auto\" 表示按主机特性检测）\n")
	sb.WriteString(fmt.Sprintf("isas = [%s]\n\n", strings.Join(isas, ", ")))
	sb.WriteString("# 为虚拟值运行寄存器分配\n")
	sb.WriteString(fmt.Sprintf("allocate = %t\n\n", c.Codegen.Allocate))
	sb.WriteString("# compile --install 使用的可执行内存上限（字节）\n")
	sb.WriteString(fmt.Sprintf("code_cache_size = %d\n\n", c.Codegen.CodeCacheSize))
	sb.WriteString("[log]\n")
	sb.WriteString("# debug | info | warn | error\n")
	sb.WriteString(fmt.Sprintf("level = %q\n\n", c.Log.Level))
	sb.WriteString("# console | json\n")
	sb.WriteString(fmt.Sprintf("format = %q\n", c.Log.Format))

	return sb.String()
}

// Validate 校验配置，返回所有问题的合并错误
func (c *Config) Validate() error {
	var err error

	if len(c.Codegen.ISAs) == 0 {
		err = multierr.Append(err, fmt.Errorf("codegen.isas: at least one instruction set is required"))
	}
	for _, name := range c.Codegen.ISAs {
		if strings.EqualFold(name, AutoISA) {
			if len(c.Codegen.ISAs) > 1 {
				err = multierr.Append(err, fmt.Errorf("codegen.isas: %q cannot be combined with explicit instruction sets", AutoISA))
			}
			continue
		}
		if _, perr := jit.ParseISA(name); perr != nil {
			err = multierr.Append(err, fmt.Errorf("codegen.isas: %w", perr))
		}
	}

	if c.Codegen.CodeCacheSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("codegen.code_cache_size: must be positive, got %d", c.Codegen.CodeCacheSize))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return err
}

// JITConfig 转换为编译器配置
func (c *Config) JITConfig() (*jit.Config, error) {
	isas := make(map[jit.ISA]bool)

	for _, name := range c.Codegen.ISAs {
		if strings.EqualFold(name, AutoISA) {
			for _, isa := range HostISAs() {
				isas[isa] = true
			}
			continue
		}
		isa, err := jit.ParseISA(name)
		if err != nil {
			return nil, err
		}
		isas[isa] = true
	}

	return &jit.Config{
		ISAs:     isas,
		Allocate: c.Codegen.Allocate,
	}, nil
}

// HostISAs 检测主机支持的指令集
//
// 非 ARM64 主机上返回基线集合（ArmBase、AdvSimd 及向量辅助函数），
// 使交叉生成不依赖主机。
func HostISAs() []jit.ISA {
	isas := []jit.ISA{
		jit.ISAArmBase, jit.ISAArmBaseArm64,
		jit.ISAAdvSimd, jit.ISAAdvSimdArm64,
		jit.ISAVector64, jit.ISAVector128,
	}

	if runtime.GOARCH != "arm64" {
		return isas
	}

	if !cpu.ARM64.HasASIMD {
		isas = []jit.ISA{jit.ISAArmBase, jit.ISAArmBaseArm64}
	}
	if cpu.ARM64.HasCRC32 {
		isas = append(isas, jit.ISACrc32, jit.ISACrc32Arm64)
	}
	return isas
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	var dir string
	if info.IsDir() {
		dir = startPath
	} else {
		dir = filepath.Dir(startPath)
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	// 向上查找
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
