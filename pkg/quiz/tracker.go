package quiz

import (
	"fmt"
	"log"
	"math"
	"time"
)

// AnswerRecord 一道题的作答记录
type AnswerRecord struct {
	QuizID   string
	Name     string
	Selected []string // 单选题只有一个元素；疼痛问卷为所有选择
	Correct  bool
}

// Results 成绩汇总（派生数据，不存储）
type Results struct {
	Total     int
	Correct   int
	Incorrect int
	Score     int // 百分制，四舍五入
	Elapsed   time.Duration
	Time      string // m:ss
	Answers   []AnswerRecord
}

// Tracker 作答记录
// 每个 quizID 至多一条记录，重复记录以最后一次为准（正常流程中选项作答后即失效）
type Tracker struct {
	bank    *Bank
	now     func() time.Time
	start   time.Time
	started bool
	answers map[string]*AnswerRecord
	order   []string
}

// NewTracker 创建记录器，now 为 nil 时使用 time.Now
func NewTracker(bank *Bank, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	t := &Tracker{bank: bank, now: now}
	t.Init()
	return t
}

// Init 清空所有记录并重新开始计时
func (t *Tracker) Init() {
	t.answers = make(map[string]*AnswerRecord)
	t.order = nil
	t.start = t.now()
	t.started = true
	log.Printf("[Tracker] Initialized")
}

// EnsureStarted 没有任何记录时重新开始计时，已有记录时保持不变
func (t *Tracker) EnsureStarted() {
	if len(t.answers) == 0 {
		t.start = t.now()
		t.started = true
	}
}

// Record 记录一次作答
func (t *Tracker) Record(quizID string, selected []string, isCorrect bool) {
	rec, exists := t.answers[quizID]
	if !exists {
		rec = &AnswerRecord{QuizID: quizID}
		t.answers[quizID] = rec
		t.order = append(t.order, quizID)
	}
	rec.Name = t.bank.Name(quizID)
	rec.Selected = append([]string(nil), selected...)
	rec.Correct = isCorrect

	log.Printf("[Tracker] Recorded %s: %v (correct=%v)", quizID, selected, isCorrect)
}

// Answer 返回某道题的记录
func (t *Tracker) Answer(quizID string) (AnswerRecord, bool) {
	rec, ok := t.answers[quizID]
	if !ok {
		return AnswerRecord{}, false
	}
	return *rec, true
}

// Answered 报告某道题是否已作答
func (t *Tracker) Answered(quizID string) bool {
	_, ok := t.answers[quizID]
	return ok
}

// Len 返回记录数
func (t *Tracker) Len() int {
	return len(t.answers)
}

// Results 计算成绩，没有记录时得分为 0
func (t *Tracker) Results() Results {
	r := Results{Total: len(t.answers)}
	for _, id := range t.order {
		rec := t.answers[id]
		if rec.Correct {
			r.Correct++
		}
		r.Answers = append(r.Answers, *rec)
	}
	r.Incorrect = r.Total - r.Correct
	if r.Total > 0 {
		r.Score = int(math.Round(float64(r.Correct) / float64(r.Total) * 100))
	}

	if t.started {
		r.Elapsed = t.now().Sub(t.start)
	}
	r.Time = FormatElapsed(r.Elapsed)
	return r
}

// FormatElapsed 格式化为 分:秒（秒补零）
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
