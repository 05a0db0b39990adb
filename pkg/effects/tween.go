package effects

import (
	"fmt"

	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
	"github.com/decker502/pulpcase/pkg/utils"
)

// FrameMs 数值动画的刷新间隔（约 60 FPS）
const FrameMs = 1000.0 / 60.0

// Tween 数值滚动动画：在 durationMs 内以 EaseOutQuart 从 from 变化到 to，
// 每帧写入 "%.1f <suffix>"。alive 返回 false 时停止写入（可为 nil）。
func Tween(s surface.Surface, sched *timing.Scheduler, id string, from, to, durationMs float64, suffix string, alive func() bool) {
	if !s.Exists(id) {
		return
	}

	start := sched.Now()
	var update func()
	update = func() {
		if alive != nil && !alive() {
			return
		}
		progress := 1.0
		if durationMs > 0 {
			progress = utils.Clamp01((sched.Now() - start) / durationMs)
		}
		current := utils.Lerp(from, to, utils.EaseOutQuart(progress))
		s.WriteText(id, fmt.Sprintf("%.1f %s", current, suffix))
		if progress < 1 {
			sched.After(FrameMs, update)
		}
	}
	update()
}
