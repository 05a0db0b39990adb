package surface

import (
	"sort"
	"strings"
)

// Kind 元素类别，决定 scenes 包如何绘制以及能否点击
type Kind string

const (
	KindText     Kind = "text"
	KindTitle    Kind = "title"
	KindBubble   Kind = "bubble"
	KindButton   Kind = "button"
	KindOption   Kind = "option"
	KindMeter    Kind = "meter"
	KindFeedback Kind = "feedback"
	KindViewport Kind = "viewport"
	KindScene    Kind = "scene"
)

// Element Board 上的一个元素
type Element struct {
	ID     string
	Kind   Kind
	Scene  int    // 所属场景索引，-1 表示全局元素（进度条等）
	Parent string // 所属容器（气泡容器、选项行），可为空

	Text     string
	Cursor   bool
	Visible  bool
	Disabled bool
	Width    float64

	// Data 元素附加数据（如选项的 value、所属 quiz）
	Data map[string]string

	classes map[string]bool

	// 初始状态，用于 Reset
	initialText    string
	initialVisible bool
}

// Classes 返回排序后的样式类列表
func (e *Element) Classes() []string {
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// HasClass 报告元素是否带有指定样式类
func (e *Element) HasClass(class string) bool {
	return e.classes[class]
}

// Board 内存中的演示层实现
// 元素按注册顺序保存，scenes 包按该顺序布局和绘制
type Board struct {
	elements map[string]*Element
	order    []string
}

// NewBoard 创建空的 Board
func NewBoard() *Board {
	return &Board{
		elements: make(map[string]*Element),
	}
}

// Register 注册一个元素，重复注册同一 ID 会覆盖旧元素但保留原顺序
func (b *Board) Register(e Element) *Element {
	el := e
	if el.classes == nil {
		el.classes = make(map[string]bool)
	}
	if el.Data == nil {
		el.Data = make(map[string]string)
	}
	el.initialText = el.Text
	el.initialVisible = el.Visible

	if _, exists := b.elements[el.ID]; !exists {
		b.order = append(b.order, el.ID)
	}
	b.elements[el.ID] = &el
	return &el
}

// Element 按 ID 查找元素，不存在时返回 nil
func (b *Board) Element(id string) *Element {
	return b.elements[id]
}

// Elements 按注册顺序返回满足条件的元素；filter 为 nil 时返回全部
func (b *Board) Elements(filter func(*Element) bool) []*Element {
	var out []*Element
	for _, id := range b.order {
		el := b.elements[id]
		if filter == nil || filter(el) {
			out = append(out, el)
		}
	}
	return out
}

// SceneElements 返回属于指定场景的元素
func (b *Board) SceneElements(scene int) []*Element {
	return b.Elements(func(e *Element) bool { return e.Scene == scene && e.Kind != KindScene })
}

// ElementsWithClass 返回带有指定样式类的元素 ID（按注册顺序）
func (b *Board) ElementsWithClass(class string) []string {
	var ids []string
	for _, el := range b.Elements(func(e *Element) bool { return e.classes[class] }) {
		ids = append(ids, el.ID)
	}
	return ids
}

// Reset 将所有元素恢复到注册时的状态
func (b *Board) Reset() {
	for _, el := range b.elements {
		el.Text = el.initialText
		el.Visible = el.initialVisible
		el.Cursor = false
		el.Disabled = false
		el.Width = 0
		el.classes = make(map[string]bool)
	}
}

func (b *Board) Exists(id string) bool {
	_, ok := b.elements[id]
	return ok
}

func (b *Board) Show(id string) {
	if el := b.elements[id]; el != nil {
		el.Visible = true
	}
}

func (b *Board) Hide(id string) {
	if el := b.elements[id]; el != nil {
		el.Visible = false
	}
}

func (b *Board) WriteText(id, text string) {
	if el := b.elements[id]; el != nil {
		el.Text = text
	}
}

func (b *Board) AppendChar(id string, ch rune) {
	if el := b.elements[id]; el != nil {
		var sb strings.Builder
		sb.WriteString(el.Text)
		sb.WriteRune(ch)
		el.Text = sb.String()
	}
}

func (b *Board) SetCursor(id string, on bool) {
	if el := b.elements[id]; el != nil {
		el.Cursor = on
	}
}

func (b *Board) AddClass(id, class string) {
	if el := b.elements[id]; el != nil {
		el.classes[class] = true
	}
}

func (b *Board) RemoveClass(id, class string) {
	if el := b.elements[id]; el != nil {
		delete(el.classes, class)
	}
}

func (b *Board) HasClass(id, class string) bool {
	if el := b.elements[id]; el != nil {
		return el.classes[class]
	}
	return false
}

func (b *Board) SetDisabled(id string, disabled bool) {
	if el := b.elements[id]; el != nil {
		el.Disabled = disabled
	}
}

func (b *Board) SetWidth(id string, percent float64) {
	if el := b.elements[id]; el != nil {
		el.Width = max(0, min(100, percent))
	}
}

// 编译期检查
var _ Surface = (*Board)(nil)
