package quiz

import (
	"time"

	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/surface"
)

func testCaseConfig() *config.CaseConfig {
	opts := func(correct string, keys ...string) []config.OptionConfig {
		var out []config.OptionConfig
		for _, k := range keys {
			out = append(out, config.OptionConfig{
				Key:         k,
				Label:       "Option " + k,
				Icon:        map[bool]string{true: "✅", false: "❌"}[k == correct],
				Explanation: "Explanation " + k,
				Correct:     k == correct,
			})
		}
		return out
	}
	return &config.CaseConfig{
		Quizzes: []config.QuizConfig{
			{ID: "thermal", Name: "Thermal Test", CorrectAnswer: "2", Options: opts("2", "1", "2", "3")},
			{ID: "diagnosis", Name: "Clinical Diagnosis", CorrectAnswer: "1", Options: opts("1", "1", "2", "3", "4")},
			{ID: "q1", Name: "Q1: Immediate Management", CorrectAnswer: "C", Options: opts("C", "A", "B", "C", "D")},
		},
		PainProfile: config.PainProfileConfig{QuizID: "painProfile", Name: "Pain Profile"},
	}
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPanel() (*Panel, *Tracker, *surface.Board) {
	cfg := testCaseConfig()
	bank := NewBank(cfg)
	tracker := NewTracker(bank, newFakeClock().Now)
	board := surface.NewBoard()
	for i, id := range bank.IDs() {
		def, _ := bank.Get(id)
		RegisterElements(board, 10+i, def)
	}
	return NewPanel(bank, tracker, board), tracker, board
}
