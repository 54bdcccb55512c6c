package errors

import (
	"fmt"
	"strings"
)

// Formatter 诊断格式化器
type Formatter struct {
	Colors    bool // 是否使用颜色
	ShowNotes bool // 是否显示现场说明
	ShowHelp  bool // 是否显示缺陷类别说明
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:    ColorsEnabled(),
		ShowNotes: true,
		ShowHelp:  true,
	}
}

// FormatInternalError 格式化内部缺陷
//
//	error[J0003]: RMW target v1 aliases source operand 2
//	 = note: AdvSimd.MultiplyAdd<int> v1 <- (v0, v1, v2)
//	 = help: read-modify-write register aliasing (registers)
func (f *Formatter) FormatInternalError(err *InternalError) string {
	var sb strings.Builder

	info, known := GetErrorInfo(err.Code)
	level := LevelError
	if known {
		level = info.Level
	}

	levelStr := f.colorize(level.String(), f.levelColor(level))
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), f.levelColor(level))
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, err.Message))

	if f.ShowNotes {
		for _, note := range err.Notes {
			noteLabel := f.colorize(" = note:", ColorCyan)
			sb.WriteString(fmt.Sprintf("%s %s\n", noteLabel, note))
		}
	}

	if f.ShowHelp && known {
		helpLabel := f.colorize(" = help:", ColorCyan)
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", helpLabel, info.Title, info.Category))
	}

	return sb.String()
}

func (f *Formatter) colorize(s string, c Color) string {
	if !f.Colors {
		return s
	}
	return Colorize(s, c)
}

func (f *Formatter) levelColor(l Level) Color {
	switch l {
	case LevelError:
		return ColorBoldRed
	case LevelNote:
		return ColorBoldBlue
	case LevelHelp:
		return ColorBoldCyan
	default:
		return ColorBoldWhite
	}
}
