package painprofile

import (
	"log"

	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/quiz"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// SubmitID 提交按钮的元素 ID
const SubmitID = "btn-pain-submit"

// OptionID 问卷选项的元素 ID
func OptionID(field, value string) string {
	return "pain-" + field + "-" + value
}

// LabelID 字段标题的元素 ID
func LabelID(field string) string {
	return "pain-label-" + field
}

// Form 问卷交互逻辑
type Form struct {
	cfg        config.PainProfileConfig
	required   []string
	selections *Selections
	tracker    *quiz.Tracker
	surface    surface.Surface
	scheduler  *timing.Scheduler

	// AdvanceDelayMs 提交后自动翻页的延迟
	AdvanceDelayMs float64

	submitVisible bool
	submitted     bool
}

// NewForm 创建问卷
// selections 由会话持有，重开病例时由会话清空
func NewForm(cfg config.PainProfileConfig, sel *Selections, tracker *quiz.Tracker, s surface.Surface, sched *timing.Scheduler) *Form {
	required := RequiredFields
	if len(cfg.Fields) > 0 {
		required = nil
		for _, f := range cfg.Fields {
			required = append(required, f.Name)
		}
	}
	return &Form{
		cfg:            cfg,
		required:       required,
		selections:     sel,
		tracker:        tracker,
		surface:        s,
		scheduler:      sched,
		AdvanceDelayMs: 800,
	}
}

// Required 返回必填字段
func (f *Form) Required() []string {
	return append([]string(nil), f.required...)
}

// Submitted 报告问卷是否已提交
func (f *Form) Submitted() bool {
	return f.submitted
}

func (f *Form) field(name string) (config.PainFieldConfig, bool) {
	for _, fc := range f.cfg.Fields {
		if fc.Name == name {
			return fc, true
		}
	}
	return config.PainFieldConfig{}, false
}

// Click 点击某个选项
// 单选字段：取消同行其他选项；多选字段：切换当前选项
func (f *Form) Click(field, value string) {
	if f.submitted {
		return
	}
	fc, ok := f.field(field)
	if !ok {
		log.Printf("[PainProfile] Warning: unknown field %q", field)
		return
	}
	known := false
	for _, o := range fc.Options {
		if o.Value == value {
			known = true
			break
		}
	}
	if !known {
		log.Printf("[PainProfile] Warning: field %s has no option %q", field, value)
		return
	}

	id := OptionID(field, value)
	if fc.Multi {
		if f.selections.Toggle(field, value) {
			f.surface.AddClass(id, surface.ClassSelected)
		} else {
			f.surface.RemoveClass(id, surface.ClassSelected)
		}
	} else {
		for _, o := range fc.Options {
			f.surface.RemoveClass(OptionID(field, o.Value), surface.ClassSelected)
		}
		f.surface.AddClass(id, surface.ClassSelected)
		f.selections.Set(field, value)
	}

	f.updateSubmit()
}

// updateSubmit 根据完整性显示或隐藏提交按钮，只在状态变化时操作
func (f *Form) updateSubmit() {
	complete := f.selections.IsComplete(f.required)
	switch {
	case complete && !f.submitVisible:
		f.surface.Show(SubmitID)
		f.submitVisible = true
	case !complete && f.submitVisible:
		f.surface.Hide(SubmitID)
		f.submitVisible = false
	}
}

// Submit 提交问卷并判分
//
// 所有选项失效；正确选项一律标记 correct（无论是否被选），选错的标记 incorrect。
// 只有没有选错任何选项时才算答对。记录完成后延迟 AdvanceDelayMs 调用 advance。
// 未填完或重复提交时返回 false。
func (f *Form) Submit(advance func()) bool {
	if f.submitted || !f.selections.IsComplete(f.required) {
		return false
	}
	f.submitted = true

	allCorrect := true
	for _, fc := range f.cfg.Fields {
		for _, o := range fc.Options {
			id := OptionID(fc.Name, o.Value)
			selected := f.selections.Has(fc.Name, o.Value)

			f.surface.SetDisabled(id, true)
			f.surface.AddClass(id, surface.ClassDisabled)

			if o.Correct {
				f.surface.AddClass(id, surface.ClassCorrect)
				f.surface.RemoveClass(id, surface.ClassSelected)
			}
			if selected && !o.Correct {
				f.surface.AddClass(id, surface.ClassIncorrect)
				f.surface.RemoveClass(id, surface.ClassSelected)
				allCorrect = false
			}
		}
	}

	f.tracker.Record(f.cfg.QuizID, f.selections.Flatten(f.required), allCorrect)
	log.Printf("[PainProfile] Submitted (correct=%v)", allCorrect)

	if advance != nil {
		f.scheduler.After(f.AdvanceDelayMs, advance)
	}
	return true
}

// Reset 清空选择并恢复为未提交状态（元素外观由 Board.Reset 负责）
func (f *Form) Reset() {
	f.selections.Clear()
	f.submitted = false
	f.submitVisible = false
}

// RegisterElements 在 Board 上生成问卷的字段标题、选项和提交按钮
func RegisterElements(b *surface.Board, scene int, cfg config.PainProfileConfig) {
	for _, fc := range cfg.Fields {
		label := fc.Label
		if fc.Multi {
			label += " (select all that apply)"
		}
		b.Register(surface.Element{
			ID:      LabelID(fc.Name),
			Kind:    surface.KindText,
			Scene:   scene,
			Text:    label,
			Visible: true,
		})
		for _, o := range fc.Options {
			b.Register(surface.Element{
				ID:      OptionID(fc.Name, o.Value),
				Kind:    surface.KindOption,
				Scene:   scene,
				Text:    o.Label,
				Visible: true,
				Data: map[string]string{
					"action": "pain:select",
					"field":  fc.Name,
					"value":  o.Value,
				},
			})
		}
	}
	b.Register(surface.Element{
		ID:    SubmitID,
		Kind:  surface.KindButton,
		Scene: scene,
		Text:  "Submit",
		Data:  map[string]string{"action": "pain:submit"},
	})
}
