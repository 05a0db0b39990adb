package quiz

import (
	"fmt"
	"strings"

	"github.com/decker502/pulpcase/pkg/surface"
)

// 评语等级
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierNeedsWork = "needs-work"
)

// Tier 根据得分返回评语等级和文字
func Tier(score int) (string, string) {
	switch {
	case score >= 80:
		return TierExcellent, "🎉 Excellent! You have a strong understanding of reversible pulpitis diagnosis and management."
	case score >= 50:
		return TierGood, "👍 Good job! Review the concepts you missed to strengthen your knowledge."
	default:
		return TierNeedsWork, "📚 Keep studying! Review the case again to improve your understanding."
	}
}

// RenderStatistics 将成绩写入结果页
func RenderStatistics(s surface.Surface, t *Tracker) Results {
	r := t.Results()

	s.WriteText("statCorrect", fmt.Sprint(r.Correct))
	s.WriteText("statTotal", fmt.Sprint(r.Total))
	s.WriteText("statScore", fmt.Sprintf("%d%%", r.Score))
	s.WriteText("statTime", r.Time)

	lines := make([]string, 0, len(r.Answers))
	for _, a := range r.Answers {
		verdict := "❌ Incorrect"
		if a.Correct {
			verdict = "✅ Correct"
		}
		lines = append(lines, a.Name+"  "+verdict)
	}
	s.WriteText("statsBreakdown", strings.Join(lines, "\n"))

	tier, msg := Tier(r.Score)
	for _, c := range []string{TierExcellent, TierGood, TierNeedsWork} {
		s.RemoveClass("statsMessage", c)
	}
	s.WriteText("statsMessage", msg)
	s.AddClass("statsMessage", tier)

	return r
}
