// Package scenes 实现病例播放的 Ebitengine 场景：把 Board 上的元素布局、绘制出来，
// 并把点击和按键转换为 caseplay 的动作
package scenes

import (
	"math"

	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/navigation"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/utils"
)

// TextMeasure 测量 size 字号下一行文本的宽度
type TextMeasure func(s string, size float64) float64

// Box 一个已布局的元素
type Box struct {
	Element    *surface.Element
	X, Y, W, H float64

	// Lines 换行后的文字；气泡包含所有子元素的文字
	Lines []string
	// Size 字号
	Size float64
	// Speaker 气泡的说话人
	Speaker string
	// Cursor 最后一行末尾显示打字光标
	Cursor bool
	// Chrome 全局元素，不随场景切换滑动
	Chrome bool
}

// Contains 报告点是否落在元素（含点击扩展区域）内
func (b Box) Contains(x, y float64) bool {
	p := config.ClickPadding
	return x >= b.X-p && x <= b.X+b.W+p && y >= b.Y-p && y <= b.Y+b.H+p
}

// Layout 一帧的布局结果，绘制和点击检测共用
type Layout struct {
	Scene int
	Title string
	Boxes []Box
}

// Box 按 ID 查找已布局的元素
func (l Layout) Box(id string) (Box, bool) {
	for _, b := range l.Boxes {
		if b.Element.ID == id {
			return b, true
		}
	}
	return Box{}, false
}

// HitTest 返回 (x, y) 处带有动作的最上层元素，没有时返回 nil
func (l Layout) HitTest(x, y float64) *surface.Element {
	for i := len(l.Boxes) - 1; i >= 0; i-- {
		b := l.Boxes[i]
		if b.Element.Data["action"] != "" && b.Contains(x, y) {
			return b.Element
		}
	}
	return nil
}

// BuildLayout 布局全局元素和指定场景的可见元素
//
// 块级元素（文字、气泡、仪表、视图）自上而下排列；相邻的选项和按钮
// 在同一行内从左到右排列，放不下时换行。超出正文区域的元素不布局。
func BuildLayout(b *surface.Board, scene int, measure TextMeasure) Layout {
	l := Layout{Scene: scene}
	if sc := b.Element(navigation.SceneID(scene)); sc != nil {
		l.Title = sc.Text
	}

	for _, e := range b.SceneElements(-1) {
		if box, ok := chromeBox(e); ok && e.Visible {
			l.Boxes = append(l.Boxes, box)
		}
	}

	f := flow{measure: measure, y: config.ContentY, x: config.ContentX}
	for _, e := range b.SceneElements(scene) {
		if !e.Visible || e.Parent != "" {
			continue
		}
		box, ok := f.place(b, e)
		if !ok {
			continue
		}
		if box.Y+box.H > config.ContentBottom {
			break
		}
		l.Boxes = append(l.Boxes, box)
	}
	return l
}

func chromeBox(e *surface.Element) (Box, bool) {
	box := Box{Element: e, Chrome: true, Size: config.BodyFontSize, Lines: []string{e.Text}}
	switch e.ID {
	case navigation.ProgressBarID:
		box.X, box.Y = config.ProgressBarX, config.ProgressBarY
		box.W, box.H = config.ProgressBarWidth, config.ProgressBarHeight
		box.Lines = nil
	case navigation.PrevButtonID:
		box.X, box.Y, box.W, box.H = config.NavButtonRect(false)
	case navigation.NextButtonID:
		box.X, box.Y, box.W, box.H = config.NavButtonRect(true)
	case navigation.SceneNumberID:
		box.Size = config.SmallFontSize
		box.W, box.H = 80, config.NavButtonHeight
		box.X = (float64(config.GameWindowWidth) - box.W) / 2
		box.Y = config.NavButtonY
	default:
		return Box{}, false
	}
	return box, true
}

// flow 正文列的排版游标
type flow struct {
	measure TextMeasure
	x, y    float64
	rowH    float64
	inline  bool
}

func (f *flow) measureAt(size float64) utils.MeasureFunc {
	return func(s string) float64 {
		if f.measure == nil {
			return 0
		}
		return f.measure(s, size)
	}
}

func (f *flow) wrap(text string, size, width float64) []string {
	return utils.WrapText(text, f.measureAt(size), width)
}

// breakRow 结束当前的行内排列
func (f *flow) breakRow() {
	if f.inline {
		f.y += f.rowH + config.ElementGap
		f.x = config.ContentX
		f.rowH = 0
		f.inline = false
	}
}

// block 放置一个占满整行宽度、高度为 h 的块
func (f *flow) block(box Box, h float64) Box {
	f.breakRow()
	box.X, box.Y = config.ContentX, f.y
	box.W, box.H = config.ContentWidth, h
	f.y += h + config.ElementGap
	return box
}

// inlineBox 行内放置宽 w 高 h 的元素
func (f *flow) inlineBox(box Box, w, h float64) Box {
	w = math.Min(w, config.ContentWidth)
	if f.inline && f.x+w > config.ContentX+config.ContentWidth {
		f.breakRow()
	}
	f.inline = true
	box.X, box.Y = f.x, f.y
	box.W, box.H = w, h
	f.x += w + config.ElementGap
	f.rowH = math.Max(f.rowH, h)
	return box
}

func (f *flow) place(b *surface.Board, e *surface.Element) (Box, bool) {
	box := Box{Element: e, Size: config.BodyFontSize}
	lh := config.LineHeight(config.BodyFontSize)

	switch e.Kind {
	case surface.KindText, surface.KindTitle, surface.KindFeedback:
		text := e.Text
		if label := e.Data["label"]; label != "" {
			text = label + ": " + text
		}
		if text == "" && !e.Cursor {
			return Box{}, false
		}
		if e.Kind == surface.KindTitle {
			box.Size = config.TitleFontSize
			lh = config.LineHeight(config.TitleFontSize)
		}
		box.Lines = f.wrap(text, box.Size, config.ContentWidth)
		box.Cursor = e.Cursor
		return f.block(box, float64(len(box.Lines))*lh), true

	case surface.KindBubble:
		inner := config.ContentWidth - 2*config.BubblePadding
		for _, child := range b.Elements(func(c *surface.Element) bool { return c.Parent == e.ID && c.Visible }) {
			if child.Text != "" {
				box.Lines = append(box.Lines, f.wrap(child.Text, box.Size, inner)...)
			}
			box.Cursor = box.Cursor || child.Cursor
		}
		if len(box.Lines) == 0 {
			box.Lines = []string{""}
		}
		box.Speaker = e.Data["speaker"]
		h := 2*config.BubblePadding + float64(len(box.Lines))*lh
		if box.Speaker != "" {
			h += config.LineHeight(config.SmallFontSize)
		}
		return f.block(box, h), true

	case surface.KindOption:
		pad := config.BubblePadding
		w := f.measureAt(box.Size)(e.Text) + 2*pad
		box.Lines = f.wrap(e.Text, box.Size, config.ContentWidth-2*pad)
		h := math.Max(config.OptionHeight, float64(len(box.Lines))*lh+pad)
		return f.inlineBox(box, math.Max(w, 80), h), true

	case surface.KindButton:
		box.Lines = []string{e.Text}
		w := math.Max(config.ButtonWidth, f.measureAt(box.Size)(e.Text)+2*config.BubblePadding)
		return f.inlineBox(box, w, config.ButtonHeight), true

	case surface.KindMeter:
		return f.block(box, config.MeterHeight), true

	case surface.KindViewport:
		return f.block(box, config.ViewportHeight), true
	}
	return Box{}, false
}
