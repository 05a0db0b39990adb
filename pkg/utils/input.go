// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态（鼠标或触摸）
type PointerState struct {
	// JustPressed 本帧刚按下
	JustPressed bool
	// Pressed 处于按下状态
	Pressed bool
	// X, Y 指针位置
	X, Y int
}

// ReadPointer 读取当前帧的指针状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func ReadPointer() PointerState {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return PointerState{JustPressed: true, Pressed: true, X: x, Y: y}
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return PointerState{Pressed: true, X: x, Y: y}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
)

// DragTracker 跟踪一次拖拽，每帧报告相对上一帧的位移
type DragTracker struct {
	state      DragState
	lastX      int
	lastY      int
	totalMoved int
}

// Begin 在 (x, y) 开始拖拽
func (d *DragTracker) Begin(x, y int) {
	d.state = DragStateDragging
	d.lastX, d.lastY = x, y
	d.totalMoved = 0
}

// Move 更新指针位置，返回相对上一帧的位移；未在拖拽时返回 0
func (d *DragTracker) Move(x, y int) (dx, dy int) {
	if d.state != DragStateDragging {
		return 0, 0
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	d.totalMoved += abs(dx) + abs(dy)
	return dx, dy
}

// End 结束拖拽
func (d *DragTracker) End() {
	d.state = DragStateNone
}

// Update 根据指针状态推进拖拽：松开即结束，返回本帧位移
func (d *DragTracker) Update(p PointerState) (dx, dy int) {
	if d.state != DragStateDragging {
		return 0, 0
	}
	if !p.Pressed {
		d.End()
		return 0, 0
	}
	return d.Move(p.X, p.Y)
}

// IsDragging 是否正在拖拽
func (d *DragTracker) IsDragging() bool {
	return d.state == DragStateDragging
}

// TotalMoved 本次拖拽累计移动的曼哈顿距离
func (d *DragTracker) TotalMoved() int {
	return d.totalMoved
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
