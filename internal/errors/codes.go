// Package errors 提供代码生成器的内部缺陷诊断
//
// 代码生成阶段的所有断言失败都属于编译器自身的缺陷，不存在可恢复的错误路径。
// 这里定义缺陷码、断言辅助函数以及诊断输出格式。
package errors

// ============================================================================
// 诊断级别
// ============================================================================

// Level 诊断级别
type Level int

const (
	LevelError Level = iota // 错误
	LevelNote               // 说明
	LevelHelp               // 帮助
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// 内部缺陷码 (J 开头)
// ============================================================================

const (
	J0001 = "J0001" // 不支持的内建函数 / 类别 / 类型组合
	J0002 = "J0002" // 操作数数量与表不符
	J0003 = "J0003" // RMW 目标寄存器与源寄存器别名冲突
	J0004 = "J0004" // 立即数分派违规（多指令、越界、协议顺序）
	J0005 = "J0005" // 无法编码的指令操作数
	J0006 = "J0006" // 标签误用（重复定义、未定义）
	J0007 = "J0007" // 内部临时寄存器缺失或多余
)

// ErrorInfo 缺陷码描述
type ErrorInfo struct {
	Code     string
	Level    Level
	Title    string
	Category string
}

var internalErrors = map[string]ErrorInfo{
	J0001: {J0001, LevelError, "unsupported intrinsic combination", "selection"},
	J0002: {J0002, LevelError, "operand count mismatch", "selection"},
	J0003: {J0003, LevelError, "read-modify-write register aliasing", "registers"},
	J0004: {J0004, LevelError, "immediate dispatch violation", "immediate"},
	J0005: {J0005, LevelError, "operand cannot be encoded", "encoding"},
	J0006: {J0006, LevelError, "label misuse", "encoding"},
	J0007: {J0007, LevelError, "internal register mismatch", "registers"},
}

// GetErrorInfo 获取缺陷码信息
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := internalErrors[code]
	return info, ok
}

// IsInternalCode 检查是否为已知的内部缺陷码
func IsInternalCode(code string) bool {
	_, ok := internalErrors[code]
	return ok
}
