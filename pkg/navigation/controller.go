// Package navigation 管理场景切换、进度显示与重开病例
package navigation

import (
	"fmt"
	"log"
	"strconv"

	"github.com/decker502/pulpcase/pkg/sequencer"
	"github.com/decker502/pulpcase/pkg/session"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// 全局控件 ID
const (
	ProgressBarID = "progressBar"
	SceneNumberID = "currentSceneNum"
	PrevButtonID  = "btnPrev"
	NextButtonID  = "btnNext"
)

// 默认切换节奏（毫秒），锁定时长必须覆盖离场动画
const (
	DefaultTransitionMs = 500
	DefaultSettleMs     = 550
)

// SceneID 返回场景容器元素 ID
func SceneID(index int) string {
	return fmt.Sprintf("scene-%d", index)
}

// Controller 导航控制器
//
// 场景索引只由 Controller 修改。切换动画进行期间（SettleMs 内）的导航请求被忽略。
type Controller struct {
	session   *session.Session
	surface   surface.Surface
	scheduler *timing.Scheduler
	runner    *sequencer.Runner

	// TransitionMs 离场动画时长，结束后移除 exit-left
	TransitionMs float64
	// SettleMs 切换锁定时长，不小于 TransitionMs
	SettleMs float64

	resetHooks []func()
	// deferred 切换锁期间排队的自动前进
	deferred []func() bool
	// OnSceneChanged 场景切换后回调（可为 nil），参数为旧索引和新索引
	OnSceneChanged func(from, to int)
}

// NewController 创建导航控制器
func NewController(sess *session.Session, s surface.Surface, sched *timing.Scheduler, runner *sequencer.Runner) *Controller {
	c := &Controller{
		session:      sess,
		surface:      s,
		scheduler:    sched,
		runner:       runner,
		TransitionMs: DefaultTransitionMs,
		SettleMs:     DefaultSettleMs,
	}
	runner.SetAdvance(c.NextWhenSettled)
	return c
}

// OnRestart 注册重开病例时执行的重置函数（按注册顺序执行）
func (c *Controller) OnRestart(fn func()) {
	c.resetHooks = append(c.resetHooks, fn)
}

// Current 返回当前场景索引
func (c *Controller) Current() int {
	return c.session.CurrentScene
}

// Start 显示当前场景（启动时调用一次）
func (c *Controller) Start() {
	c.surface.AddClass(SceneID(c.session.CurrentScene), surface.ClassActive)
	c.updateChrome()
	c.runner.EnterScene(c.session.CurrentScene)
}

// GoToScene 切换到目标场景，返回是否发生了切换
//
// 目标越界、等于当前场景或切换进行中时不做任何事。
func (c *Controller) GoToScene(target int, reverse bool) bool {
	from := c.session.CurrentScene
	if !c.session.InRange(target) || target == from || c.session.Transitioning {
		return false
	}

	c.session.Transitioning = true

	oldID := SceneID(from)
	c.surface.RemoveClass(oldID, surface.ClassActive)
	if !reverse {
		c.surface.AddClass(oldID, surface.ClassExitLeft)
		c.scheduler.After(c.TransitionMs, func() {
			c.surface.RemoveClass(oldID, surface.ClassExitLeft)
		})
	}

	newID := SceneID(target)
	c.surface.RemoveClass(newID, surface.ClassExitLeft)
	if reverse {
		c.surface.AddClass(newID, surface.ClassEnterReverse)
	} else {
		c.surface.RemoveClass(newID, surface.ClassEnterReverse)
	}
	c.surface.AddClass(newID, surface.ClassActive)

	c.session.CurrentScene = target
	c.updateChrome()

	c.scheduler.After(c.SettleMs, c.settled)

	log.Printf("[Navigation] Scene %d -> %d (reverse=%v)", from, target, reverse)
	if c.OnSceneChanged != nil {
		c.OnSceneChanged(from, target)
	}

	c.runner.EnterScene(target)
	return true
}

// Next 前进一个场景
func (c *Controller) Next() bool {
	if c.session.CurrentScene >= c.session.TotalScenes-1 {
		return false
	}
	return c.GoToScene(c.session.CurrentScene+1, false)
}

// NextWhenSettled 自动前进：切换锁期间推迟到锁释放时执行
//
// alive 在真正翻页前检查，返回 false 时放弃前进。
func (c *Controller) NextWhenSettled(alive func() bool) {
	if !c.session.Transitioning {
		if alive() {
			c.Next()
		}
		return
	}
	c.deferred = append(c.deferred, alive)
}

// settled 释放切换锁，执行排队中仍然有效的第一个前进
func (c *Controller) settled() {
	c.session.Transitioning = false
	pending := c.deferred
	c.deferred = nil
	for _, alive := range pending {
		if alive() {
			c.Next()
			return
		}
	}
}

// Prev 后退一个场景
func (c *Controller) Prev() bool {
	if c.session.CurrentScene <= 0 {
		return false
	}
	return c.GoToScene(c.session.CurrentScene-1, true)
}

// Progress 返回进度百分比 current/(total-1)*100
func (c *Controller) Progress() float64 {
	if c.session.TotalScenes <= 1 {
		return 100
	}
	return float64(c.session.CurrentScene) / float64(c.session.TotalScenes-1) * 100
}

func (c *Controller) updateChrome() {
	c.surface.SetWidth(ProgressBarID, c.Progress())
	c.surface.WriteText(SceneNumberID, strconv.Itoa(c.session.CurrentScene+1))
	c.surface.SetDisabled(PrevButtonID, c.session.CurrentScene == 0)
	c.surface.SetDisabled(NextButtonID, c.session.CurrentScene == c.session.TotalScenes-1)
}

// Restart 重开病例
//
// 停止媒体，清空所有定时器，重置会话和所有动态视觉状态，然后激活场景 0。
// 切换锁不影响重开。
func (c *Controller) Restart() {
	log.Printf("[Navigation] Restarting case from scene %d", c.session.CurrentScene)

	c.runner.StopMedia()
	c.scheduler.Clear()
	c.deferred = nil
	c.session.Reset()

	for _, fn := range c.resetHooks {
		fn()
	}

	for i := 0; i < c.session.TotalScenes; i++ {
		id := SceneID(i)
		c.surface.RemoveClass(id, surface.ClassActive)
		c.surface.RemoveClass(id, surface.ClassExitLeft)
		c.surface.RemoveClass(id, surface.ClassEnterReverse)
	}

	c.Start()
}
