package exam

import (
	"github.com/decker502/pulpcase/pkg/effects"
	"github.com/decker502/pulpcase/pkg/sequencer"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// EPT 场景元素
const (
	MeterNormalID    = "meterNormal"
	MeterAffectedID  = "meterAffected"
	NormalValueID    = "eptNormalValue"
	AffectedValueID  = "eptAffectedValue"
	EPTResultID      = "eptResult"
	EPTContinue      = "btn-scene-12"
	CurrentUnit      = "μA"
	zeroCurrentLabel = "0 " + CurrentUnit
)

// EPTReading 一颗牙的读数动画
type EPTReading struct {
	MeterID string
	ValueID string
	// StartMs 相对动画开始的延迟
	StartMs float64
	// Percent 仪表宽度
	Percent float64
	// Current 最终读数（μA）
	Current float64
}

// 对照牙 #46 与患牙 #36
var DefaultEPTReadings = []EPTReading{
	{MeterID: MeterNormalID, ValueID: NormalValueID, StartMs: 500, Percent: 75, Current: 18.7},
	{MeterID: MeterAffectedID, ValueID: AffectedValueID, StartMs: 3000, Percent: 60, Current: 15},
}

// EPT 牙髓电活力测试动画
type EPT struct {
	surface   surface.Surface
	scheduler *timing.Scheduler

	Readings []EPTReading
	// CountMs 读数滚动时长
	CountMs float64
	// ResultMs 显示结论的延迟
	ResultMs float64
}

// NewEPT 创建 EPT 动画
func NewEPT(s surface.Surface, sched *timing.Scheduler) *EPT {
	return &EPT{
		surface:   s,
		scheduler: sched,
		Readings:  DefaultEPTReadings,
		CountMs:   2000,
		ResultMs:  5500,
	}
}

// Animate 从零开始播放动画，所有定时步骤都以 tok 校验
func (e *EPT) Animate(tok sequencer.Token) {
	e.Reset()

	for _, r := range e.Readings {
		e.scheduler.After(r.StartMs, func() {
			if !tok.IsCurrent() {
				return
			}
			e.surface.SetWidth(r.MeterID, r.Percent)
			effects.Tween(e.surface, e.scheduler, r.ValueID, 0, r.Current, e.CountMs, CurrentUnit, tok.IsCurrent)
		})
	}

	e.scheduler.After(e.ResultMs, func() {
		if !tok.IsCurrent() {
			return
		}
		e.surface.Show(EPTResultID)
		e.surface.Show(EPTContinue)
	})
}

// Reset 仪表归零并隐藏结论
func (e *EPT) Reset() {
	for _, r := range e.Readings {
		e.surface.SetWidth(r.MeterID, 0)
		e.surface.WriteText(r.ValueID, zeroCurrentLabel)
	}
	e.surface.Hide(EPTResultID)
	e.surface.Hide(EPTContinue)
}
