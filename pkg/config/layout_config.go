package config

import "image/color"

// 布局配置常量
// 本文件定义了病例画面的布局参数：窗口、顶部进度条、正文列、底部导航

// Window 逻辑屏幕尺寸，Ebitengine 负责缩放到实际窗口
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// Header 顶部区域：进度条 + 场景标题
const (
	ProgressBarX      = 20.0
	ProgressBarY      = 10.0
	ProgressBarWidth  = float64(GameWindowWidth) - 2*ProgressBarX
	ProgressBarHeight = 6.0

	// TitleY 场景标题的基线上沿
	TitleY = 28.0
)

// Content 正文列
// 元素按注册顺序自上而下排列，超出 ContentBottom 的元素不绘制
const (
	ContentX      = 60.0
	ContentY      = 72.0
	ContentWidth  = float64(GameWindowWidth) - 2*ContentX
	ContentBottom = NavButtonY - 12.0

	// ElementGap 相邻元素之间的垂直间距
	ElementGap = 10.0

	// BubblePadding 对话气泡内边距
	BubblePadding = 12.0

	// OptionHeight 选项最小高度（文字多行时按行数增高）
	OptionHeight = 34.0

	ButtonWidth  = 180.0
	ButtonHeight = 36.0

	MeterHeight = 16.0

	// ViewportHeight 3D 视图区域高度
	ViewportHeight = 240.0
)

// Navigation 底部导航
const (
	NavButtonY      = float64(GameWindowHeight) - NavButtonHeight - 16.0
	NavButtonWidth  = 120.0
	NavButtonHeight = 36.0
	NavButtonMargin = 20.0
)

// 字号
const (
	TitleFontSize = 24.0
	BodyFontSize  = 16.0
	SmallFontSize = 13.0

	// LineSpacing 行距倍数
	LineSpacing = 1.35
)

// FontPath 正文字体（缺失时回退到内置 Go 字体）
const FontPath = "assets/fonts/NotoSans-Regular.ttf"

// ClickPadding 点击区域在元素四周的扩展（像素）
const ClickPadding = 4.0

// CursorBlinkMs 打字光标闪烁周期
const CursorBlinkMs = 500.0

// Palette 画面配色
var (
	ColorBackground     = color.RGBA{R: 246, G: 248, B: 250, A: 255}
	ColorText           = color.RGBA{R: 33, G: 37, B: 41, A: 255}
	ColorMuted          = color.RGBA{R: 108, G: 117, B: 125, A: 255}
	ColorAccent         = color.RGBA{R: 13, G: 110, B: 253, A: 255}
	ColorProgressTrack  = color.RGBA{R: 222, G: 226, B: 230, A: 255}
	ColorBubblePatient  = color.RGBA{R: 255, G: 243, B: 205, A: 255}
	ColorBubbleDoctor   = color.RGBA{R: 207, G: 226, B: 255, A: 255}
	ColorOption         = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorOptionBorder   = color.RGBA{R: 173, G: 181, B: 189, A: 255}
	ColorSelected       = color.RGBA{R: 207, G: 226, B: 255, A: 255}
	ColorCorrect        = color.RGBA{R: 209, G: 231, B: 221, A: 255}
	ColorIncorrect      = color.RGBA{R: 248, G: 215, B: 218, A: 255}
	ColorButton         = color.RGBA{R: 13, G: 110, B: 253, A: 255}
	ColorButtonDisabled = color.RGBA{R: 173, G: 181, B: 189, A: 255}
	ColorButtonText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorViewport       = color.RGBA{R: 30, G: 34, B: 40, A: 255}
)

// NavButtonRect 返回导航按钮的矩形
//
// 参数：
//   - next: true 为"下一页"按钮（右下角），false 为"上一页"按钮（左下角）
//
// 返回：
//   - x, y, w, h: 屏幕坐标矩形
func NavButtonRect(next bool) (x, y, w, h float64) {
	x = NavButtonMargin
	if next {
		x = float64(GameWindowWidth) - NavButtonMargin - NavButtonWidth
	}
	return x, NavButtonY, NavButtonWidth, NavButtonHeight
}

// LineHeight 返回指定字号的行高
func LineHeight(fontSize float64) float64 {
	return fontSize * LineSpacing
}
