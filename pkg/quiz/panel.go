package quiz

import (
	"log"

	"github.com/decker502/pulpcase/pkg/surface"
)

// Panel 单选测验的交互逻辑
//
// 作答流程:
//  1. 所有选项失效，正确选项标记 show-correct
//  2. 选中项标记 selected-correct 或 selected-incorrect
//  3. 写入作答记录
//  4. 显示解析（图标 + 文字）和"继续"按钮
type Panel struct {
	bank    *Bank
	tracker *Tracker
	surface surface.Surface
}

// NewPanel 创建测验面板
func NewPanel(bank *Bank, tracker *Tracker, s surface.Surface) *Panel {
	return &Panel{bank: bank, tracker: tracker, surface: s}
}

// Activate 进入测验场景时调用：未作答时确保"继续"按钮隐藏
func (p *Panel) Activate(quizID string) {
	if _, ok := p.bank.Get(quizID); !ok {
		log.Printf("[QuizPanel] Warning: unknown quiz %q", quizID)
		return
	}
	if !p.tracker.Answered(quizID) {
		p.surface.Hide(ContinueID(quizID))
	}
	log.Printf("[QuizPanel] Quiz %s ready", quizID)
}

// Select 选择答案，返回是否被接受
// 未知测验、未知选项或已作答的测验都会被忽略
func (p *Panel) Select(quizID, key string) bool {
	def, ok := p.bank.Get(quizID)
	if !ok {
		log.Printf("[QuizPanel] Warning: unknown quiz %q", quizID)
		return false
	}
	chosen, ok := def.Option(key)
	if !ok {
		log.Printf("[QuizPanel] Warning: quiz %s has no option %q", quizID, key)
		return false
	}
	if p.tracker.Answered(quizID) || p.surface.HasClass(OptionID(quizID, key), surface.ClassDisabled) {
		return false
	}

	for _, opt := range def.Options {
		id := OptionID(quizID, opt.Key)
		p.surface.AddClass(id, surface.ClassDisabled)
		p.surface.SetDisabled(id, true)
		if opt.Correct {
			p.surface.AddClass(id, surface.ClassShowCorrect)
		}
	}

	chosenID := OptionID(quizID, key)
	if chosen.Correct {
		p.surface.AddClass(chosenID, surface.ClassSelectedCorrect)
		p.surface.RemoveClass(chosenID, surface.ClassShowCorrect)
	} else {
		p.surface.AddClass(chosenID, surface.ClassSelectedIncorrect)
	}

	p.tracker.Record(quizID, []string{key}, chosen.Correct)

	feedbackID := FeedbackID(quizID)
	p.surface.WriteText(feedbackID, chosen.Icon+" "+chosen.Text)
	p.surface.RemoveClass(feedbackID, surface.ClassCorrectFeedback)
	p.surface.RemoveClass(feedbackID, surface.ClassIncorrectFeedback)
	if chosen.Correct {
		p.surface.AddClass(feedbackID, surface.ClassCorrectFeedback)
	} else {
		p.surface.AddClass(feedbackID, surface.ClassIncorrectFeedback)
	}
	p.surface.Show(feedbackID)
	p.surface.Show(ContinueID(quizID))

	return true
}

// RegisterElements 在 Board 上为测验生成题干、选项、解析和"继续"按钮
func RegisterElements(b *surface.Board, scene int, def *Definition) {
	b.Register(surface.Element{
		ID:      QuestionID(def.ID),
		Kind:    surface.KindText,
		Scene:   scene,
		Text:    def.Question,
		Visible: true,
	})
	for _, opt := range def.Options {
		b.Register(surface.Element{
			ID:      OptionID(def.ID, opt.Key),
			Kind:    surface.KindOption,
			Scene:   scene,
			Text:    opt.Key + ". " + opt.Label,
			Visible: true,
			Data: map[string]string{
				"action": "quiz:select",
				"quiz":   def.ID,
				"answer": opt.Key,
			},
		})
	}
	b.Register(surface.Element{
		ID:    FeedbackID(def.ID),
		Kind:  surface.KindFeedback,
		Scene: scene,
	})
	b.Register(surface.Element{
		ID:    ContinueID(def.ID),
		Kind:  surface.KindButton,
		Scene: scene,
		Text:  "Continue",
		Data:  map[string]string{"action": "next"},
	})
}
