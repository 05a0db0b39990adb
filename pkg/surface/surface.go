// Package surface 定义演示层的窄接口以及它的内存实现 Board
//
// 流程控制代码（sequencer、navigation、quiz、painprofile）只通过 Surface
// 接触画面；所有操作对未知 ID 都是静默的空操作，场景可以引用可选元素。
package surface

// Surface 演示层接口
type Surface interface {
	// Exists 报告 id 是否对应一个存活的元素
	Exists(id string) bool

	// Show / Hide 幂等的可见性切换
	Show(id string)
	Hide(id string)

	// WriteText 整体替换元素文本
	WriteText(id, text string)
	// AppendChar 在文本末尾（光标之前）追加一个字符
	AppendChar(id string, ch rune)
	// SetCursor 打开或关闭元素末尾的闪烁光标
	SetCursor(id string, on bool)

	AddClass(id, class string)
	RemoveClass(id, class string)
	HasClass(id, class string) bool

	// SetDisabled 控制元素是否响应点击
	SetDisabled(id string, disabled bool)
	// SetWidth 设置进度条/仪表宽度（百分比 0~100）
	SetWidth(id string, percent float64)
}

// 常用样式类名
const (
	ClassActive            = "active"
	ClassExitLeft          = "exit-left"
	ClassEnterReverse      = "enter-reverse"
	ClassSelected          = "selected"
	ClassDisabled          = "disabled"
	ClassCorrect           = "correct"
	ClassIncorrect         = "incorrect"
	ClassSelectedCorrect   = "selected-correct"
	ClassSelectedIncorrect = "selected-incorrect"
	ClassShowCorrect       = "show-correct"
	ClassCorrectFeedback   = "correct-feedback"
	ClassIncorrectFeedback = "incorrect-feedback"
	ClassPicked            = "picked"
)
