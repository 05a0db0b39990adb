package sequencer

import (
	"fmt"
	"strings"

	"github.com/decker502/pulpcase/pkg/config"
)

// StepKind 步骤类型
type StepKind int

const (
	StepShow StepKind = iota
	StepHide
	StepType
	StepWait
	StepWaitDialogue
	StepInvoke
	StepPlayMedia
	StepAdvance
)

var stepKindNames = [...]string{"show", "hide", "type", "wait", "waitDialogue", "invoke", "media", "advance"}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step 脚本中的一步
//
// 不同类型使用的字段:
//   - Show/Hide: Target
//   - Type: Target, Line, Speed
//   - Wait: Ms
//   - WaitDialogue: Line
//   - Invoke: Effect
//   - PlayMedia: Media
type Step struct {
	Kind   StepKind
	Target string
	Line   string
	Speed  float64
	Ms     float64
	Effect string
	Media  string
}

func (s Step) String() string {
	switch s.Kind {
	case StepShow, StepHide:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Target)
	case StepType:
		return fmt.Sprintf("type(%s, %s)", s.Target, s.Line)
	case StepWait:
		return fmt.Sprintf("wait(%g)", s.Ms)
	case StepWaitDialogue:
		return fmt.Sprintf("waitDialogue(%s)", s.Line)
	case StepInvoke:
		return fmt.Sprintf("invoke(%s)", s.Effect)
	case StepPlayMedia:
		return fmt.Sprintf("media(%s)", s.Media)
	default:
		return s.Kind.String()
	}
}

// Script 一个场景的完整脚本
type Script struct {
	Index int
	Title string
	// Media 进入场景时播放的媒体资源，空表示静音
	Media string
	Steps []Step
	// OnEnter 脚本完成后执行一次的副作用，仍然有效时才执行
	OnEnter string
}

// BuildScripts 将配置中的场景转换为脚本，按索引排列
//
// say 宏展开为: show(container) → type → waitDialogue → hide(container)。
// 带测验的场景没有声明 onEnter 时自动使用 quiz:<id>。
func BuildScripts(cfg *config.CaseConfig) []Script {
	scripts := make([]Script, len(cfg.Scenes))
	for i, sc := range cfg.Scenes {
		script := Script{
			Index:   sc.Index,
			Title:   sc.Title,
			Media:   sc.Media,
			OnEnter: sc.OnEnter,
		}
		if script.OnEnter == "" && sc.Quiz != "" {
			script.OnEnter = "quiz:" + sc.Quiz
		}
		for _, st := range sc.Steps {
			script.Steps = append(script.Steps, expandStep(st)...)
		}
		scripts[i] = script
	}
	return scripts
}

func expandStep(st config.StepConfig) []Step {
	var steps []Step
	for _, id := range st.Hide {
		steps = append(steps, Step{Kind: StepHide, Target: id})
	}
	for _, id := range st.Show {
		steps = append(steps, Step{Kind: StepShow, Target: id})
	}
	if st.Wait > 0 {
		steps = append(steps, Step{Kind: StepWait, Ms: st.Wait})
	}
	if st.WaitDialogue != "" {
		steps = append(steps, Step{Kind: StepWaitDialogue, Line: st.WaitDialogue})
	}
	if st.Type != nil {
		steps = append(steps, Step{Kind: StepType, Target: st.Type.Target, Line: st.Type.Line, Speed: st.Type.Speed})
	}
	if st.Say != nil {
		steps = append(steps,
			Step{Kind: StepShow, Target: st.Say.Container},
			Step{Kind: StepType, Target: st.Say.Target, Line: st.Say.Line, Speed: st.Say.Speed},
			Step{Kind: StepWaitDialogue, Line: st.Say.Line},
			Step{Kind: StepHide, Target: st.Say.Container},
		)
	}
	if st.Invoke != "" {
		steps = append(steps, Step{Kind: StepInvoke, Effect: st.Invoke})
	}
	if st.Media != "" {
		steps = append(steps, Step{Kind: StepPlayMedia, Media: st.Media})
	}
	if st.Advance {
		steps = append(steps, Step{Kind: StepAdvance})
	}
	return steps
}

// splitEffect 将 "quiz:thermal" 拆成 ("quiz", "thermal")
func splitEffect(name string) (string, string) {
	key, arg, _ := strings.Cut(name, ":")
	return key, arg
}
