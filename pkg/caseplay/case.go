// Package caseplay 把病例内容装配成可运行的一局：Board、会话、脚本、导航和各个交互
//
// Case 不依赖窗口和输入设备，Ebitengine 场景（pkg/scenes）和无界面的
// cmd/verify_sequence 共用同一套装配，只是驱动时钟和点击的方式不同。
package caseplay

import (
	"log"
	"time"

	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/effects"
	"github.com/decker502/pulpcase/pkg/exam"
	"github.com/decker502/pulpcase/pkg/navigation"
	"github.com/decker502/pulpcase/pkg/painprofile"
	"github.com/decker502/pulpcase/pkg/quiz"
	"github.com/decker502/pulpcase/pkg/sequencer"
	"github.com/decker502/pulpcase/pkg/session"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
	"github.com/decker502/pulpcase/pkg/viewer"
)

// 点击动作（元素 Data["action"]）
const (
	ActionNext        = "next"
	ActionPrev        = "prev"
	ActionRestart     = "restart"
	ActionQuizSelect  = "quiz:select"
	ActionPainSelect  = "pain:select"
	ActionPainSubmit  = "pain:submit"
	ActionProbePickup = "probe:pickup"
	ActionProbeTap    = "probe:tap"
)

// ModelContainerID 3D 视图容器元素
const ModelContainerID = "modelContainer"

const chromeScene = -1

// Unlocker 需要用户交互才能开始播放的媒体
type Unlocker interface {
	Unlock()
}

// Options 装配选项，零值可用
type Options struct {
	// Media 场景媒体（可为 nil，无声运行）
	Media sequencer.MediaPlayer
	// Wrap 包装 Board 得到流程代码使用的 Surface（如 surface.NewRecorder），可为 nil
	Wrap func(surface.Surface) surface.Surface
	// ReadFile 3D 模型读取函数，为 nil 时模型走程序化回退
	ReadFile func(path string) ([]byte, error)
	// Now 计时时钟，为 nil 时使用 time.Now
	Now func() time.Time
	// TypingSpeed 打字速度倍率，<=0 表示 1.0
	TypingSpeed float64
}

// Case 一局装配完成的病例
type Case struct {
	Config    *config.CaseConfig
	Board     *surface.Board
	Surface   surface.Surface
	Scheduler *timing.Scheduler
	Session   *session.Session

	Bank       *quiz.Bank
	Tracker    *quiz.Tracker
	Panel      *quiz.Panel
	Form       *painprofile.Form
	Typewriter *effects.Typewriter
	Runner     *sequencer.Runner
	Nav        *navigation.Controller
	Percussion *exam.Percussion
	EPT        *exam.EPT
	Viewer     *viewer.Viewer

	media sequencer.MediaPlayer
}

// New 根据病例内容装配一局
func New(cfg *config.CaseConfig, opts Options) *Case {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	board := BuildBoard(cfg)
	var s surface.Surface = board
	if opts.Wrap != nil {
		s = opts.Wrap(board)
	}

	sched := timing.NewScheduler()
	bank := quiz.NewBank(cfg)
	tracker := quiz.NewTracker(bank, now)
	selections := painprofile.NewSelections()
	sess := session.New(len(cfg.Scenes), tracker, selections)

	tw := effects.NewTypewriter(s, sched)
	if opts.TypingSpeed > 0 {
		tw.SpeedScale = opts.TypingSpeed
	}

	runner := sequencer.NewRunner(sess, s, sched, tw, cfg.Dialogues, sequencer.BuildScripts(cfg))
	runner.SetMedia(opts.Media)

	nav := navigation.NewController(sess, s, sched, runner)
	nav.TransitionMs = cfg.Timing.TransitionMs
	nav.SettleMs = cfg.Timing.SettleMs

	form := painprofile.NewForm(cfg.PainProfile, selections, tracker, s, sched)
	form.AdvanceDelayMs = cfg.Timing.PainSubmitAdvanceMs

	percussion := exam.NewPercussion(s, sched, opts.Media)
	percussion.RevealMs = cfg.Timing.PercussionRevealMs

	c := &Case{
		Config:     cfg,
		Board:      board,
		Surface:    s,
		Scheduler:  sched,
		Session:    sess,
		Bank:       bank,
		Tracker:    tracker,
		Panel:      quiz.NewPanel(bank, tracker, s),
		Form:       form,
		Typewriter: tw,
		Runner:     runner,
		Nav:        nav,
		Percussion: percussion,
		EPT:        exam.NewEPT(s, sched),
		Viewer:     viewer.NewViewer(s, opts.ReadFile),
		media:      opts.Media,
	}
	c.registerEffects()

	nav.OnRestart(board.Reset)
	nav.OnRestart(form.Reset)
	nav.OnRestart(percussion.Reset)
	nav.OnRestart(c.EPT.Reset)
	nav.OnRestart(c.Viewer.Reset)

	tracker.Init()
	return c
}

// registerEffects 注册脚本 onEnter / invoke 使用的副作用
func (c *Case) registerEffects() {
	c.Runner.Register("quiz", func(_ sequencer.Token, id string) {
		c.Panel.Activate(id)
	})
	c.Runner.Register("painprofile", func(_ sequencer.Token, _ string) {
		c.Tracker.EnsureStarted()
	})
	c.Runner.Register("tracker", func(_ sequencer.Token, arg string) {
		if arg != "init" {
			log.Printf("[Case] Warning: unknown tracker effect %q", arg)
			return
		}
		c.Tracker.EnsureStarted()
	})
	c.Runner.Register("model", func(_ sequencer.Token, _ string) {
		c.Viewer.MountModel(ModelContainerID)
	})
	c.Runner.Register("percussion", func(tok sequencer.Token, _ string) {
		c.Percussion.Setup(tok)
	})
	c.Runner.Register("ept", func(tok sequencer.Token, _ string) {
		c.EPT.Animate(tok)
	})
	c.Runner.Register("stats", func(_ sequencer.Token, _ string) {
		r := quiz.RenderStatistics(c.Surface, c.Tracker)
		log.Printf("[Case] Results: %d/%d correct, score %d%%, time %s", r.Correct, r.Total, r.Score, r.Time)
	})
}

// Start 从 startScene 开始运行（越界时从第 0 页开始）
func (c *Case) Start(startScene int) {
	if startScene != 0 {
		if c.Session.InRange(startScene) {
			c.Session.CurrentScene = startScene
		} else {
			log.Printf("[Case] Warning: start scene %d out of range, starting at 0", startScene)
		}
	}
	c.Nav.Start()
}

// Update 推进虚拟时钟
func (c *Case) Update(dtMs float64) {
	c.Scheduler.Update(dtMs)
	c.Viewer.Update(dtMs / 1000)
}

// Unlock 第一次用户交互后解锁媒体播放
func (c *Case) Unlock() {
	if u, ok := c.media.(Unlocker); ok {
		u.Unlock()
	}
}

// Clickable 报告元素当前能否点击：属于全局或当前场景、可见、未禁用且带有动作
func (c *Case) Clickable(e *surface.Element) bool {
	if e == nil || !e.Visible || e.Disabled || e.Data["action"] == "" {
		return false
	}
	if e.Scene != chromeScene && e.Scene != c.Session.CurrentScene {
		return false
	}
	if e.Parent != "" {
		if p := c.Board.Element(e.Parent); p != nil && !p.Visible {
			return false
		}
	}
	return true
}

// Click 点击元素，返回动作是否被执行
func (c *Case) Click(id string) bool {
	c.Unlock()
	e := c.Board.Element(id)
	if !c.Clickable(e) {
		return false
	}
	return c.Dispatch(e.Data["action"], e.Data)
}

// Dispatch 执行一个动作
func (c *Case) Dispatch(action string, data map[string]string) bool {
	switch action {
	case ActionNext:
		return c.Nav.Next()
	case ActionPrev:
		return c.Nav.Prev()
	case ActionRestart:
		c.Nav.Restart()
		return true
	case ActionQuizSelect:
		return c.Panel.Select(data["quiz"], data["answer"])
	case ActionPainSelect:
		c.Form.Click(data["field"], data["value"])
		return true
	case ActionPainSubmit:
		tok := sequencer.NewToken(c.Session)
		return c.Form.Submit(func() {
			c.Nav.NextWhenSettled(tok.IsCurrent)
		})
	case ActionProbePickup:
		return c.Percussion.Pickup()
	case ActionProbeTap:
		return c.Percussion.Tap()
	default:
		log.Printf("[Case] Warning: unknown action %q", action)
		return false
	}
}

// BuildBoard 根据病例内容注册所有元素
//
// 注册顺序即绘制顺序：全局元素 → 每个场景（容器、配置元素、测验、问卷）。
// hidden 的元素初始不可见；动作写入 Data["action"]。
func BuildBoard(cfg *config.CaseConfig) *surface.Board {
	b := surface.NewBoard()
	for _, el := range cfg.Chrome {
		registerElement(b, chromeScene, el)
	}

	bank := quiz.NewBank(cfg)
	for _, sc := range cfg.Scenes {
		b.Register(surface.Element{
			ID:      navigation.SceneID(sc.Index),
			Kind:    surface.KindScene,
			Scene:   sc.Index,
			Text:    sc.Title,
			Visible: true,
		})
		for _, el := range sc.Elements {
			registerElement(b, sc.Index, el)
		}
		if sc.Quiz != "" {
			if def, ok := bank.Get(sc.Quiz); ok {
				quiz.RegisterElements(b, sc.Index, def)
			}
		}
		if sc.Pain {
			painprofile.RegisterElements(b, sc.Index, cfg.PainProfile)
		}
	}
	return b
}

func registerElement(b *surface.Board, scene int, el config.ElementConfig) {
	kind := surface.Kind(el.Kind)
	if kind == "" {
		kind = surface.KindText
	}
	var data map[string]string
	if len(el.Data) > 0 || el.Action != "" {
		data = make(map[string]string, len(el.Data)+1)
		for k, v := range el.Data {
			data[k] = v
		}
		if el.Action != "" {
			data["action"] = el.Action
		}
	}
	b.Register(surface.Element{
		ID:      el.ID,
		Kind:    kind,
		Scene:   scene,
		Parent:  el.Parent,
		Text:    el.Text,
		Visible: !el.Hidden,
		Data:    data,
	})
}
