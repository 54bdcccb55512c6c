package errors

import (
	"os"
	"runtime"
	"strings"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorCyan
	ColorBoldRed
	ColorBoldBlue
	ColorBoldCyan
	ColorBoldWhite
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:     "\033[0m",
	ColorCyan:      "\033[36m",
	ColorBoldRed:   "\033[1;31m",
	ColorBoldBlue:  "\033[1;34m",
	ColorBoldCyan:  "\033[1;36m",
	ColorBoldWhite: "\033[1;37m",
}

// colorsEnabled 是否启用颜色
var colorsEnabled = detectColorSupport()

// detectColorSupport 检测终端是否支持颜色
func detectColorSupport() bool {
	// Windows 需要特殊处理
	if runtime.GOOS == "windows" {
		// Windows 10 1511+ 支持 ANSI
		// 检查 TERM 环境变量
		term := os.Getenv("TERM")
		if term != "" && term != "dumb" {
			return true
		}
		// 检查 WT_SESSION（Windows Terminal）
		if os.Getenv("WT_SESSION") != "" {
			return true
		}
		// 检查 ConEmu
		if os.Getenv("ConEmuANSI") == "ON" {
			return true
		}
		// 检查 ANSICON
		if os.Getenv("ANSICON") != "" {
			return true
		}
		// 检查是否启用了虚拟终端处理
		// 默认在新版 Windows 上启用
		return true
	}

	// Unix-like 系统
	// 检查 NO_COLOR 环境变量
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// 检查 TERM
	term := os.Getenv("TERM")
	if term == "dumb" {
		return false
	}

	// 检查是否为 TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil {
		if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
			return true
		}
	}

	// 检查 COLORTERM
	if os.Getenv("COLORTERM") != "" {
		return true
	}

	// 检查常见的支持颜色的终端
	colorTerms := []string{"xterm", "screen", "vt100", "linux", "ansi", "cygwin"}
	for _, ct := range colorTerms {
		if strings.Contains(strings.ToLower(term), ct) {
			return true
		}
	}

	return false
}

// ColorsEnabled 检查颜色是否启用
func ColorsEnabled() bool {
	return colorsEnabled
}

// SetColorsEnabled 设置颜色启用状态
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// Colorize 着色字符串
func Colorize(s string, color Color) string {
	if !colorsEnabled {
		return s
	}
	code, ok := ansiCodes[color]
	if !ok {
		return s
	}
	return code + s + ansiCodes[ColorReset]
}

// BoldRed 加粗红色
func BoldRed(s string) string {
	return Colorize(s, ColorBoldRed)
}

// Strip 移除 ANSI 颜色代码
func Strip(s string) string {
	result := s
	for _, code := range ansiCodes {
		result = strings.ReplaceAll(result, code, "")
	}
	return result
}
