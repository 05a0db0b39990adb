// Package quiz 管理单选测验内容、作答记录与成绩统计
package quiz

import "github.com/decker502/pulpcase/pkg/config"

// Explanation 选项的解析
type Explanation struct {
	Icon    string
	Text    string
	Correct bool
}

// Option 一个可选答案
type Option struct {
	Key   string
	Label string
	Explanation
}

// Definition 单选测验定义（只读）
type Definition struct {
	ID            string
	Name          string
	Question      string
	CorrectAnswer string
	Options       []Option // 按配置顺序
}

// Option 按 key 查找选项
func (d *Definition) Option(key string) (Option, bool) {
	for _, o := range d.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Bank 测验定义集合
type Bank struct {
	defs  map[string]*Definition
	order []string
	names map[string]string // 额外的名称（如疼痛问卷），只用于成绩单
}

// NewBank 从配置构建测验集合
func NewBank(cfg *config.CaseConfig) *Bank {
	b := &Bank{
		defs:  make(map[string]*Definition),
		names: make(map[string]string),
	}
	for _, qc := range cfg.Quizzes {
		def := &Definition{
			ID:            qc.ID,
			Name:          qc.Name,
			Question:      qc.Question,
			CorrectAnswer: qc.CorrectAnswer,
		}
		for _, oc := range qc.Options {
			def.Options = append(def.Options, Option{
				Key:   oc.Key,
				Label: oc.Label,
				Explanation: Explanation{
					Icon:    oc.Icon,
					Text:    oc.Explanation,
					Correct: oc.Correct,
				},
			})
		}
		b.defs[def.ID] = def
		b.order = append(b.order, def.ID)
	}
	b.names[cfg.PainProfile.QuizID] = cfg.PainProfile.Name
	return b
}

// Get 按 ID 查找测验
func (b *Bank) Get(id string) (*Definition, bool) {
	d, ok := b.defs[id]
	return d, ok
}

// IDs 返回按配置顺序排列的测验 ID
func (b *Bank) IDs() []string {
	return append([]string(nil), b.order...)
}

// Name 返回成绩单使用的名称，未知 ID 返回 ID 本身
func (b *Bank) Name(id string) string {
	if d, ok := b.defs[id]; ok {
		return d.Name
	}
	if n, ok := b.names[id]; ok {
		return n
	}
	return id
}

// OptionID 测验选项在演示层上的元素 ID
func OptionID(quizID, key string) string {
	return "quiz-" + quizID + "-" + key
}

// FeedbackID 测验解析区域的元素 ID
func FeedbackID(quizID string) string {
	return "feedback-" + quizID
}

// ContinueID 测验"继续"按钮的元素 ID
func ContinueID(quizID string) string {
	return "btn-quiz-" + quizID
}

// QuestionID 题干元素 ID
func QuestionID(quizID string) string {
	return "question-" + quizID
}
