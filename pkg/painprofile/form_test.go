package painprofile

import (
	"reflect"
	"testing"

	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/quiz"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

func testProfileConfig() config.PainProfileConfig {
	return config.PainProfileConfig{
		QuizID: "painProfile",
		Name:   "Pain Profile",
		Fields: []config.PainFieldConfig{
			{Name: "status", Options: []config.PainOptionConfig{
				{Value: "provoked", Correct: true}, {Value: "spontaneous"},
			}},
			{Name: "character", Options: []config.PainOptionConfig{
				{Value: "sharp", Correct: true}, {Value: "dull"}, {Value: "throbbing"},
			}},
			{Name: "duration", Options: []config.PainOptionConfig{
				{Value: "seconds", Correct: true}, {Value: "minutes"},
			}},
			{Name: "triggers", Multi: true, Options: []config.PainOptionConfig{
				{Value: "cold", Correct: true}, {Value: "sweet", Correct: true}, {Value: "hot"},
			}},
		},
	}
}

type formFixture struct {
	form    *Form
	sel     *Selections
	tracker *quiz.Tracker
	board   *surface.Board
	rec     *surface.Recorder
	sched   *timing.Scheduler
}

func newFormFixture() *formFixture {
	cfg := testProfileConfig()
	board := surface.NewBoard()
	RegisterElements(board, 6, cfg)
	rec := surface.NewRecorder(board)

	caseCfg := &config.CaseConfig{PainProfile: cfg}
	tracker := quiz.NewTracker(quiz.NewBank(caseCfg), nil)
	sel := NewSelections()
	sched := timing.NewScheduler()

	return &formFixture{
		form:    NewForm(cfg, sel, tracker, rec, sched),
		sel:     sel,
		tracker: tracker,
		board:   board,
		rec:     rec,
		sched:   sched,
	}
}

// TestSingleSelectRadio 测试单选字段的单选框语义
func TestSingleSelectRadio(t *testing.T) {
	fx := newFormFixture()

	fx.form.Click("character", "dull")
	fx.form.Click("character", "sharp")

	if got := fx.sel.Get("character"); !reflect.DeepEqual(got, []string{"sharp"}) {
		t.Errorf("character = %v, want [sharp]", got)
	}
	if fx.board.HasClass(OptionID("character", "dull"), surface.ClassSelected) {
		t.Error("dull should be deselected")
	}
	if !fx.board.HasClass(OptionID("character", "sharp"), surface.ClassSelected) {
		t.Error("sharp should be selected")
	}
}

// TestMultiSelectToggle 测试多选字段的复选框语义
func TestMultiSelectToggle(t *testing.T) {
	fx := newFormFixture()

	fx.form.Click("triggers", "cold")
	fx.form.Click("triggers", "sweet")
	fx.form.Click("triggers", "cold")

	if got := fx.sel.Get("triggers"); !reflect.DeepEqual(got, []string{"sweet"}) {
		t.Errorf("triggers = %v, want [sweet]", got)
	}
	if fx.board.HasClass(OptionID("triggers", "cold"), surface.ClassSelected) {
		t.Error("cold should be toggled off")
	}
	if !fx.board.HasClass(OptionID("triggers", "sweet"), surface.ClassSelected) {
		t.Error("sweet should stay selected")
	}
}

// TestSubmitRevealedOnlyWhenComplete 测试缺一个字段时不显示提交按钮，补齐后只显示一次
func TestSubmitRevealedOnlyWhenComplete(t *testing.T) {
	fx := newFormFixture()

	fx.form.Click("status", "provoked")
	fx.form.Click("character", "sharp")
	fx.form.Click("triggers", "cold")
	fx.form.Click("triggers", "sweet")

	if fx.board.Element(SubmitID).Visible || fx.rec.Count("show", SubmitID) != 0 {
		t.Fatal("submit must stay hidden while duration is empty")
	}

	fx.form.Click("duration", "seconds")
	fx.form.Click("duration", "minutes")
	fx.form.Click("character", "dull")

	if !fx.board.Element(SubmitID).Visible {
		t.Fatal("submit should be visible once all fields are filled")
	}
	if got := fx.rec.Count("show", SubmitID); got != 1 {
		t.Errorf("submit shown %d times, want exactly 1", got)
	}
}

// TestSubmitHiddenWhenFieldEmptied 测试多选字段被清空后隐藏提交按钮
func TestSubmitHiddenWhenFieldEmptied(t *testing.T) {
	fx := newFormFixture()
	for _, c := range [][2]string{{"status", "provoked"}, {"character", "sharp"}, {"duration", "seconds"}, {"triggers", "cold"}} {
		fx.form.Click(c[0], c[1])
	}
	fx.form.Click("triggers", "cold")

	if fx.board.Element(SubmitID).Visible {
		t.Error("submit should be hidden after emptying triggers")
	}
}

// TestSubmitAllCorrect 测试全对提交
func TestSubmitAllCorrect(t *testing.T) {
	fx := newFormFixture()
	for _, c := range [][2]string{{"status", "provoked"}, {"character", "sharp"}, {"duration", "seconds"}, {"triggers", "cold"}, {"triggers", "sweet"}} {
		fx.form.Click(c[0], c[1])
	}

	advanced := 0
	if !fx.form.Submit(func() { advanced++ }) {
		t.Fatal("Submit should be accepted")
	}

	rec, ok := fx.tracker.Answer("painProfile")
	if !ok || !rec.Correct {
		t.Fatalf("record = %+v, %v; want correct", rec, ok)
	}
	wantSel := []string{"status=provoked", "character=sharp", "duration=seconds", "triggers=cold", "triggers=sweet"}
	if !reflect.DeepEqual(rec.Selected, wantSel) {
		t.Errorf("Selected = %v, want %v", rec.Selected, wantSel)
	}

	if advanced != 0 {
		t.Error("advance must be delayed")
	}
	fx.sched.Update(799)
	if advanced != 0 {
		t.Error("advance fired before 800ms")
	}
	fx.sched.Update(1)
	if advanced != 1 {
		t.Errorf("advance fired %d times, want 1", advanced)
	}
}

// TestSubmitMarksCorrectAndIncorrect 测试提交后的标记规则
func TestSubmitMarksCorrectAndIncorrect(t *testing.T) {
	fx := newFormFixture()
	for _, c := range [][2]string{{"status", "spontaneous"}, {"character", "sharp"}, {"duration", "seconds"}, {"triggers", "hot"}} {
		fx.form.Click(c[0], c[1])
	}
	fx.form.Submit(nil)

	tests := []struct {
		id        string
		correct   bool
		incorrect bool
	}{
		{OptionID("status", "provoked"), true, false},    // 未选但正确
		{OptionID("status", "spontaneous"), false, true}, // 选错
		{OptionID("character", "sharp"), true, false},    // 选对
		{OptionID("character", "dull"), false, false},    // 未选且错误
		{OptionID("triggers", "cold"), true, false},      // 未选但正确
		{OptionID("triggers", "hot"), false, true},       // 选错
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el := fx.board.Element(tt.id)
			if el.HasClass(surface.ClassCorrect) != tt.correct {
				t.Errorf("correct = %v, want %v", el.HasClass(surface.ClassCorrect), tt.correct)
			}
			if el.HasClass(surface.ClassIncorrect) != tt.incorrect {
				t.Errorf("incorrect = %v, want %v", el.HasClass(surface.ClassIncorrect), tt.incorrect)
			}
			if el.HasClass(surface.ClassSelected) {
				t.Error("selected class should be replaced after submit")
			}
			if !el.Disabled {
				t.Error("option should be disabled")
			}
		})
	}

	if rec, _ := fx.tracker.Answer("painProfile"); rec.Correct {
		t.Error("profile with wrong picks must be incorrect")
	}
}

// TestSubmitRejected 测试未填完或重复提交
func TestSubmitRejected(t *testing.T) {
	fx := newFormFixture()
	fx.form.Click("status", "provoked")

	if fx.form.Submit(nil) {
		t.Error("incomplete submit should be rejected")
	}

	for _, c := range [][2]string{{"character", "sharp"}, {"duration", "seconds"}, {"triggers", "cold"}} {
		fx.form.Click(c[0], c[1])
	}
	if !fx.form.Submit(nil) {
		t.Fatal("complete submit should be accepted")
	}
	if fx.form.Submit(nil) {
		t.Error("second submit should be rejected")
	}

	// 提交后点击无效
	fx.form.Click("character", "dull")
	if fx.sel.Has("character", "dull") {
		t.Error("clicks after submit must be ignored")
	}
}

// TestFormReset 测试重置
func TestFormReset(t *testing.T) {
	fx := newFormFixture()
	for _, c := range [][2]string{{"status", "provoked"}, {"character", "sharp"}, {"duration", "seconds"}, {"triggers", "cold"}} {
		fx.form.Click(c[0], c[1])
	}
	fx.form.Submit(nil)

	fx.form.Reset()
	fx.board.Reset()
	fx.rec.Reset()

	if fx.sel.Len() != 0 || fx.form.Submitted() {
		t.Error("Reset should clear selections and submitted flag")
	}
	for _, c := range [][2]string{{"status", "provoked"}, {"character", "sharp"}, {"duration", "seconds"}, {"triggers", "cold"}} {
		fx.form.Click(c[0], c[1])
	}
	if got := fx.rec.Count("show", SubmitID); got != 1 {
		t.Errorf("submit shown %d times after reset, want 1", got)
	}
}

// TestUnknownClicks 测试未知字段与选项
func TestUnknownClicks(t *testing.T) {
	fx := newFormFixture()
	fx.form.Click("mood", "happy")
	fx.form.Click("status", "bogus")

	if fx.sel.Len() != 0 {
		t.Error("unknown clicks must not change selections")
	}
}
