package sequencer

import (
	"log"

	"github.com/decker502/pulpcase/pkg/effects"
	"github.com/decker502/pulpcase/pkg/session"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// MediaPlayer 场景媒体播放
type MediaPlayer interface {
	// Play 播放资源，先停止当前播放
	Play(ref string) bool
	// Stop 停止当前播放
	Stop()
}

// Effect 一次性副作用，arg 为名称冒号后的部分（"quiz:thermal" → "thermal"）
type Effect func(tok Token, arg string)

// Runner 脚本解释器
type Runner struct {
	session    *session.Session
	surface    surface.Surface
	scheduler  *timing.Scheduler
	typewriter *effects.Typewriter
	dialogues  map[string]string
	scripts    map[int]Script
	effects    map[string]Effect
	media      MediaPlayer
	advance    func(alive func() bool)
}

// NewRunner 创建脚本解释器
func NewRunner(sess *session.Session, s surface.Surface, sched *timing.Scheduler, tw *effects.Typewriter, dialogues map[string]string, scripts []Script) *Runner {
	r := &Runner{
		session:    sess,
		surface:    s,
		scheduler:  sched,
		typewriter: tw,
		dialogues:  dialogues,
		scripts:    make(map[int]Script, len(scripts)),
		effects:    make(map[string]Effect),
	}
	for _, sc := range scripts {
		r.scripts[sc.Index] = sc
	}
	return r
}

// SetMedia 设置媒体播放器（可为 nil）
func (r *Runner) SetMedia(m MediaPlayer) {
	r.media = m
}

// SetAdvance 设置 advance 步骤调用的前进函数
//
// alive 报告发起前进的序列是否仍然有效，前进被推迟时由 fn 在真正翻页前检查。
func (r *Runner) SetAdvance(fn func(alive func() bool)) {
	r.advance = fn
}

// Register 注册副作用，name 为冒号前的部分，例如 "quiz"、"ept"
func (r *Runner) Register(name string, e Effect) {
	r.effects[name] = e
}

// Registered 报告 name（可带 ":参数"）对应的副作用是否已注册
func (r *Runner) Registered(name string) bool {
	key, _ := splitEffect(name)
	_, ok := r.effects[key]
	return ok
}

// Script 返回场景脚本
func (r *Runner) Script(index int) (Script, bool) {
	sc, ok := r.scripts[index]
	return sc, ok
}

// StopMedia 停止当前媒体
func (r *Runner) StopMedia() {
	if r.media != nil {
		r.media.Stop()
	}
}

// EnterScene 开始执行会话当前场景的脚本
//
// 分配新的 generation，之前所有序列随即失效。index 与会话当前场景不一致时
// 返回的 Token 立即失效，脚本不会产生任何副作用。
func (r *Runner) EnterScene(index int) Token {
	r.session.NextGeneration()
	tok := NewToken(r.session)
	if index != tok.scene {
		log.Printf("[Sequencer] Warning: enter scene %d while session is on scene %d", index, tok.scene)
		tok.scene = index
	}

	r.StopMedia()
	if r.typewriter != nil {
		r.typewriter.ClearCursors()
	}

	script, ok := r.scripts[index]
	if !ok {
		return tok
	}
	log.Printf("[Sequencer] Enter scene %d (%s), generation=%d, steps=%d", index, script.Title, tok.generation, len(script.Steps))

	if script.Media != "" && r.media != nil && tok.IsCurrent() {
		r.media.Play(script.Media)
	}
	r.run(tok, script, 0)
	return tok
}

// run 从第 i 步开始执行，遇到等待类步骤时挂起并在回调中继续
func (r *Runner) run(tok Token, script Script, i int) {
	resume := func(next int) func() {
		return func() { r.run(tok, script, next) }
	}

	for i < len(script.Steps) {
		if !tok.IsCurrent() {
			return
		}
		st := script.Steps[i]
		i++

		switch st.Kind {
		case StepShow:
			r.surface.Show(st.Target)
		case StepHide:
			r.surface.Hide(st.Target)
		case StepWait:
			r.scheduler.After(st.Ms, resume(i))
			return
		case StepWaitDialogue:
			r.scheduler.After(float64(timing.DialogueWaitTime(r.dialogues[st.Line])), resume(i))
			return
		case StepType:
			r.typewriter.Reveal(st.Target, r.dialogues[st.Line], st.Speed, tok.IsCurrent, resume(i))
			return
		case StepInvoke:
			r.Invoke(tok, st.Effect)
		case StepPlayMedia:
			if r.media != nil {
				r.media.Play(st.Media)
			}
		case StepAdvance:
			if r.advance != nil {
				r.advance(tok.IsCurrent)
			}
			return
		}
	}

	if script.OnEnter != "" && tok.IsCurrent() {
		r.Invoke(tok, script.OnEnter)
	}
}

// Invoke 按名称执行副作用，Token 已失效或名称未注册时忽略
func (r *Runner) Invoke(tok Token, name string) {
	if !tok.IsCurrent() {
		return
	}
	key, arg := splitEffect(name)
	e, ok := r.effects[key]
	if !ok {
		log.Printf("[Sequencer] Warning: unknown effect %q", name)
		return
	}
	e(tok, arg)
}
