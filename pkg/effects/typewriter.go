// Package effects 提供基于虚拟时钟的文本与数值动画
package effects

import (
	"maps"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// DefaultTypeIntervalMs 默认逐字间隔（毫秒）
const DefaultTypeIntervalMs = 35

// Typewriter 打字机效果
//
// 行为:
//   - 目标元素不存在时立即完成，没有任何副作用
//   - 先清空文本并打开光标，立即显示第一个字符，之后每 interval 追加一个字符
//   - 最后一个字符之后再等待一个 interval，关闭光标并调用 done
//
// 没有独立的取消接口。调用方传入 alive，返回 false 后打字效果在下一个字符前静默停止，
// 不再写入元素，也不调用 done。同一场景重进时气泡会被复用，旧的打字效果必须让位。
// 被放弃的打字效果留下的光标由新序列开始时调用 ClearCursors 关闭。
type Typewriter struct {
	surface   surface.Surface
	scheduler *timing.Scheduler

	// SpeedScale 全局速度倍率（来自用户设置），1.0 为原速，2.0 为两倍速
	SpeedScale float64

	// cursors 光标仍打开的元素
	cursors map[string]bool
}

// NewTypewriter 创建打字机效果
func NewTypewriter(s surface.Surface, sched *timing.Scheduler) *Typewriter {
	return &Typewriter{
		surface:    s,
		scheduler:  sched,
		SpeedScale: 1.0,
		cursors:    make(map[string]bool),
	}
}

// ClearCursors 关闭所有仍打开的光标（按元素 ID 排序）
func (tw *Typewriter) ClearCursors() {
	for _, id := range slices.Sorted(maps.Keys(tw.cursors)) {
		tw.surface.SetCursor(id, false)
	}
	clear(tw.cursors)
}

// duration 返回以 intervalMs 显示 text 所需的总时长（毫秒）
func (tw *Typewriter) duration(text string, intervalMs float64) float64 {
	return float64(len([]rune(norm.NFC.String(text)))) * tw.interval(intervalMs)
}

func (tw *Typewriter) interval(intervalMs float64) float64 {
	if intervalMs <= 0 {
		intervalMs = DefaultTypeIntervalMs
	}
	if tw.SpeedScale > 0 {
		intervalMs /= tw.SpeedScale
	}
	return intervalMs
}

// Reveal 将 text 逐字写入元素 id，完成后调用 done（alive、done 均可为 nil）
func (tw *Typewriter) Reveal(id, text string, intervalMs float64, alive func() bool, done func()) {
	finish := func() {
		if done != nil {
			done()
		}
	}

	if !tw.surface.Exists(id) {
		finish()
		return
	}

	// 组合字符先规范化，避免逐 rune 显示时出现孤立的变音符号
	runes := []rune(norm.NFC.String(text))
	interval := tw.interval(intervalMs)

	tw.surface.WriteText(id, "")
	tw.surface.SetCursor(id, true)
	tw.cursors[id] = true

	i := 0
	var typeChar func()
	typeChar = func() {
		if alive != nil && !alive() {
			return
		}
		if i < len(runes) {
			tw.surface.AppendChar(id, runes[i])
			i++
			tw.scheduler.After(interval, typeChar)
			return
		}
		tw.surface.SetCursor(id, false)
		delete(tw.cursors, id)
		finish()
	}
	typeChar()
}
