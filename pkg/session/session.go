// Package session 保存单次病例演示的全部可变状态
//
// 会话在启动时创建一次，重开病例时重置（不重建），程序退出时丢弃。
// 不持久化任何作答或进度。
package session

import (
	"log"

	"github.com/decker502/pulpcase/pkg/painprofile"
	"github.com/decker502/pulpcase/pkg/quiz"
)

// Session 会话状态
type Session struct {
	// CurrentScene 当前场景索引，只由导航控制器修改
	CurrentScene int
	// TotalScenes 场景总数
	TotalScenes int
	// Transitioning 场景切换动画进行中
	Transitioning bool

	// generation 单调递增的场景执行代号，重开病例时也不回退，
	// 保证重开之前捕获的任何 Token 都不会再次生效
	generation uint64

	Tracker    *quiz.Tracker
	Selections *painprofile.Selections
}

// New 创建会话
func New(totalScenes int, tracker *quiz.Tracker, selections *painprofile.Selections) *Session {
	return &Session{
		TotalScenes: totalScenes,
		Tracker:     tracker,
		Selections:  selections,
	}
}

// Generation 返回当前代号
func (s *Session) Generation() uint64 {
	return s.generation
}

// NextGeneration 分配新的代号，之前的所有序列随即失效
func (s *Session) NextGeneration() uint64 {
	s.generation++
	return s.generation
}

// InRange 报告索引是否在 [0, TotalScenes) 内
func (s *Session) InRange(index int) bool {
	return index >= 0 && index < s.TotalScenes
}

// Reset 重开病例：回到场景 0，清空作答与问卷选择，使所有进行中的序列失效
func (s *Session) Reset() {
	s.CurrentScene = 0
	s.Transitioning = false
	s.NextGeneration()
	if s.Tracker != nil {
		s.Tracker.Init()
	}
	if s.Selections != nil {
		s.Selections.Clear()
	}
	log.Printf("[Session] Reset (generation=%d)", s.generation)
}
