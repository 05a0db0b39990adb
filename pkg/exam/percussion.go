// Package exam 实现临床检查场景中的交互：叩诊与牙髓电活力测试（EPT）
package exam

import (
	"log"

	"github.com/decker502/pulpcase/pkg/sequencer"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// 叩诊场景元素
const (
	ProbeID            = "probe"
	ToothID            = "percussion-tooth"
	ReactionID         = "percussionReaction"
	PercussionContinue = "btn-scene-10"
	PercussionSound    = "SOUND_PERCUSSION"

	DefaultPercussionRevealMs = 600
)

// Percussion 叩诊：先拿起器械，再叩击牙齿
//
// 未拿起器械时叩击无效；出现反应后重复叩击无效。
// 反应出现 RevealMs 后显示"继续"按钮，期间离开场景则不显示。
type Percussion struct {
	surface   surface.Surface
	scheduler *timing.Scheduler
	media     sequencer.MediaPlayer

	RevealMs float64

	tok     sequencer.Token
	armed   bool
	reacted bool
}

// NewPercussion 创建叩诊交互（media 可为 nil）
func NewPercussion(s surface.Surface, sched *timing.Scheduler, media sequencer.MediaPlayer) *Percussion {
	return &Percussion{
		surface:   s,
		scheduler: sched,
		media:     media,
		RevealMs:  DefaultPercussionRevealMs,
	}
}

// Setup 进入叩诊场景时调用，绑定本次场景执行
func (p *Percussion) Setup(tok sequencer.Token) {
	p.tok = tok
	if p.reacted {
		// 之前已经完成叩诊，返回时直接允许继续
		p.surface.Show(PercussionContinue)
		return
	}
	p.armed = false
	p.surface.RemoveClass(ProbeID, surface.ClassPicked)
	p.surface.RemoveClass(ReactionID, surface.ClassActive)
	p.surface.Hide(ReactionID)
	p.surface.Hide(PercussionContinue)
}

// Armed 器械是否已拿起
func (p *Percussion) Armed() bool {
	return p.armed
}

// Reacted 是否已出现叩诊反应
func (p *Percussion) Reacted() bool {
	return p.reacted
}

// Pickup 拿起器械
func (p *Percussion) Pickup() bool {
	if !p.tok.IsCurrent() || p.reacted || p.armed {
		return false
	}
	p.armed = true
	p.surface.AddClass(ProbeID, surface.ClassPicked)
	log.Printf("[Percussion] Probe picked up")
	return true
}

// Tap 叩击牙齿
func (p *Percussion) Tap() bool {
	if !p.tok.IsCurrent() || !p.armed || p.reacted {
		return false
	}
	p.reacted = true

	if p.media != nil {
		p.media.Play(PercussionSound)
	}
	p.surface.Show(ReactionID)
	p.surface.AddClass(ReactionID, surface.ClassActive)
	log.Printf("[Percussion] Tooth tapped")

	tok := p.tok
	p.scheduler.After(p.RevealMs, func() {
		if tok.IsCurrent() {
			p.surface.Show(PercussionContinue)
		}
	})
	return true
}

// Reset 重开病例时清除叩诊状态
func (p *Percussion) Reset() {
	p.tok = sequencer.Token{}
	p.armed = false
	p.reacted = false
}
