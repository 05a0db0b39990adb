package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// 病例内容文件名（位于 data/case/ 下）
const (
	DialoguesFile   = "dialogues.yaml"
	QuizzesFile     = "quizzes.yaml"
	PainProfileFile = "pain_profile.yaml"
	ScenesFile      = "scenes.yaml"

	// DefaultCaseDir 嵌入资源中的病例目录
	DefaultCaseDir = "data/case"
)

// CaseConfig 一个完整病例的静态内容
// 运行期间只读，由 LoadCaseConfig 加载并验证
type CaseConfig struct {
	Dialogues   map[string]string `yaml:"dialogues"`
	Quizzes     []QuizConfig      `yaml:"quizzes"`
	PainProfile PainProfileConfig `yaml:"painProfile"`
	Timing      TimingConfig      `yaml:"timing"`
	Resources   map[string]string `yaml:"resources"` // 媒体资源ID -> 文件路径
	Chrome      []ElementConfig   `yaml:"chrome"`    // 全局元素（进度条、导航按钮）
	Scenes      []SceneConfig     `yaml:"scenes"`
}

// QuizConfig 单选测验定义
type QuizConfig struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Question      string         `yaml:"question"`
	CorrectAnswer string         `yaml:"correctAnswer"`
	Options       []OptionConfig `yaml:"options"`
}

// OptionConfig 测验选项及其解析
type OptionConfig struct {
	Key         string `yaml:"key"`
	Label       string `yaml:"label"`
	Icon        string `yaml:"icon"`
	Explanation string `yaml:"explanation"`
	Correct     bool   `yaml:"correct"`
}

// PainProfileConfig 疼痛特征问卷
type PainProfileConfig struct {
	QuizID string            `yaml:"quizId"`
	Name   string            `yaml:"name"`
	Fields []PainFieldConfig `yaml:"fields"`
}

// PainFieldConfig 问卷的一行
type PainFieldConfig struct {
	Name    string             `yaml:"name"`
	Label   string             `yaml:"label"`
	Multi   bool               `yaml:"multi"`
	Options []PainOptionConfig `yaml:"options"`
}

// PainOptionConfig 问卷选项
type PainOptionConfig struct {
	Value   string `yaml:"value"`
	Label   string `yaml:"label"`
	Correct bool   `yaml:"correct"`
}

// TimingConfig 流程节奏参数（毫秒）
type TimingConfig struct {
	TransitionMs        float64 `yaml:"transitionMs"`
	SettleMs            float64 `yaml:"settleMs"`
	TypeIntervalMs      float64 `yaml:"typeIntervalMs"`
	PainSubmitAdvanceMs float64 `yaml:"painSubmitAdvanceMs"`
	PercussionRevealMs  float64 `yaml:"percussionRevealMs"`
}

// SceneConfig 单个场景：元素 + 脚本
type SceneConfig struct {
	Index    int             `yaml:"index"`
	Title    string          `yaml:"title"`
	Media    string          `yaml:"media"`
	Quiz     string          `yaml:"quiz"`
	Pain     bool            `yaml:"painProfile"`
	Elements []ElementConfig `yaml:"elements"`
	Steps    []StepConfig    `yaml:"steps"`
	OnEnter  string          `yaml:"onEnter"`
}

// ElementConfig 场景中的一个可显示元素
type ElementConfig struct {
	ID     string            `yaml:"id"`
	Kind   string            `yaml:"kind"`
	Text   string            `yaml:"text"`
	Parent string            `yaml:"parent"`
	Hidden bool              `yaml:"hidden"`
	Action string            `yaml:"action"`
	Data   map[string]string `yaml:"data"`
}

// StepConfig 脚本中的一步，每步只能设置一个字段
//
// 示例:
//
//	- hide: [bubble-1a, btn-scene-1]
//	- wait: 300
//	- say: {container: bubble-1a, target: dialogue-1a, line: 1a, speed: 30}
//	- show: btn-scene-1
type StepConfig struct {
	Show         StringList `yaml:"show"`
	Hide         StringList `yaml:"hide"`
	Wait         float64    `yaml:"wait"`
	WaitDialogue string     `yaml:"waitDialogue"`
	Type         *TypeStep  `yaml:"type"`
	Say          *SayStep   `yaml:"say"`
	Invoke       string     `yaml:"invoke"`
	Media        string     `yaml:"media"`
	Advance      bool       `yaml:"advance"`
}

// TypeStep 打字效果步骤
type TypeStep struct {
	Target string  `yaml:"target"`
	Line   string  `yaml:"line"`
	Speed  float64 `yaml:"speed"`
}

// SayStep 一句完整对话：显示容器 → 打字 → 停留 → 隐藏容器
type SayStep struct {
	Container string  `yaml:"container"`
	Target    string  `yaml:"target"`
	Line      string  `yaml:"line"`
	Speed     float64 `yaml:"speed"`
}

// StringList 接受单个字符串或字符串列表
type StringList []string

// UnmarshalYAML 实现 yaml.Unmarshaler
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// kinds 返回步骤中设置的字段名，用于校验"每步一个动作"
func (s StepConfig) kinds() []string {
	var set []string
	if len(s.Show) > 0 {
		set = append(set, "show")
	}
	if len(s.Hide) > 0 {
		set = append(set, "hide")
	}
	if s.Wait > 0 {
		set = append(set, "wait")
	}
	if s.WaitDialogue != "" {
		set = append(set, "waitDialogue")
	}
	if s.Type != nil {
		set = append(set, "type")
	}
	if s.Say != nil {
		set = append(set, "say")
	}
	if s.Invoke != "" {
		set = append(set, "invoke")
	}
	if s.Media != "" {
		set = append(set, "media")
	}
	if s.Advance {
		set = append(set, "advance")
	}
	return set
}

// ReadFileFunc 读取文件内容，便于在嵌入资源与磁盘之间切换
type ReadFileFunc func(path string) ([]byte, error)

// LoadCaseConfig 从目录加载病例内容
//
// 参数:
//   - dir: 病例目录（如 "data/case"）
//   - readFile: 读取函数，为 nil 时使用 os.ReadFile
//
// 返回:
//   - *CaseConfig: 已应用默认值并通过校验的配置
//   - error: 读取、解析或校验失败
func LoadCaseConfig(dir string, readFile ReadFileFunc) (*CaseConfig, error) {
	if readFile == nil {
		readFile = os.ReadFile
	}

	cfg := &CaseConfig{}
	for _, name := range []string{DialoguesFile, QuizzesFile, PainProfileFile, ScenesFile} {
		p := path.Join(dir, name)
		data, err := readFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read case config %s: %w", p, err)
		}
		// 四个文件各自只包含 CaseConfig 的一部分字段，依次解码到同一结构
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse case config YAML from %s: %w", p, err)
		}
	}

	applyCaseDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid case config in %s: %w", dir, err)
	}
	return cfg, nil
}

// ParseCaseConfig 从单个 YAML 文档解析病例内容（测试和工具使用）
func ParseCaseConfig(data []byte) (*CaseConfig, error) {
	cfg := &CaseConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse case config YAML: %w", err)
	}
	applyCaseDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid case config: %w", err)
	}
	return cfg, nil
}

// applyCaseDefaults 为缺省的节奏参数设置默认值
func applyCaseDefaults(cfg *CaseConfig) {
	t := &cfg.Timing
	if t.TransitionMs == 0 {
		t.TransitionMs = 500
	}
	if t.SettleMs == 0 {
		t.SettleMs = t.TransitionMs + 50
	}
	if t.TypeIntervalMs == 0 {
		t.TypeIntervalMs = 35
	}
	if t.PainSubmitAdvanceMs == 0 {
		t.PainSubmitAdvanceMs = 800
	}
	if t.PercussionRevealMs == 0 {
		t.PercussionRevealMs = 600
	}
	if cfg.PainProfile.QuizID == "" {
		cfg.PainProfile.QuizID = "painProfile"
	}
	if cfg.PainProfile.Name == "" {
		cfg.PainProfile.Name = "Pain Profile"
	}
}

// Validate 检查引用完整性
//
// 检查项:
//   - 场景索引连续且从 0 开始
//   - 脚本每步只有一个动作，引用的对话行存在
//   - 测验的正确答案存在且唯一标记为 correct
//   - 问卷字段非空且每个字段至少有一个正确选项
func (cfg *CaseConfig) Validate() error {
	if len(cfg.Scenes) < 2 {
		return fmt.Errorf("at least 2 scenes are required, got %d", len(cfg.Scenes))
	}
	if cfg.Timing.SettleMs < cfg.Timing.TransitionMs {
		return fmt.Errorf("settleMs (%v) must not be shorter than transitionMs (%v)", cfg.Timing.SettleMs, cfg.Timing.TransitionMs)
	}

	quizIDs := make(map[string]bool)
	for _, q := range cfg.Quizzes {
		if err := validateQuiz(q); err != nil {
			return err
		}
		if quizIDs[q.ID] {
			return fmt.Errorf("duplicate quiz id %q", q.ID)
		}
		quizIDs[q.ID] = true
	}
	if quizIDs[cfg.PainProfile.QuizID] {
		return fmt.Errorf("quiz id %q is reserved for the pain profile", cfg.PainProfile.QuizID)
	}

	for _, f := range cfg.PainProfile.Fields {
		if err := validatePainField(f); err != nil {
			return err
		}
	}

	elementIDs := make(map[string]int)
	for _, el := range cfg.Chrome {
		if el.ID == "" {
			return fmt.Errorf("chrome element without id")
		}
		elementIDs[el.ID] = -1
	}
	for i, sc := range cfg.Scenes {
		if sc.Index != i {
			return fmt.Errorf("scene at position %d has index %d (indices must be 0..n-1 in order)", i, sc.Index)
		}
		if sc.Quiz != "" && !quizIDs[sc.Quiz] {
			return fmt.Errorf("scene %d: unknown quiz %q", i, sc.Quiz)
		}
		if sc.Media != "" {
			if _, ok := cfg.Resources[sc.Media]; !ok {
				return fmt.Errorf("scene %d: unknown media %q", i, sc.Media)
			}
		}
		for _, el := range sc.Elements {
			if el.ID == "" {
				return fmt.Errorf("scene %d: element without id", i)
			}
			if prev, dup := elementIDs[el.ID]; dup {
				return fmt.Errorf("scene %d: element %q already declared in scene %d", i, el.ID, prev)
			}
			elementIDs[el.ID] = i
		}
		for j, st := range sc.Steps {
			if err := cfg.validateStep(st); err != nil {
				return fmt.Errorf("scene %d step %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func (cfg *CaseConfig) validateStep(st StepConfig) error {
	kinds := st.kinds()
	if len(kinds) != 1 {
		return fmt.Errorf("exactly one action per step expected, got %v", kinds)
	}

	if st.Media != "" {
		if _, ok := cfg.Resources[st.Media]; !ok {
			return fmt.Errorf("unknown media %q", st.Media)
		}
	}

	var line string
	switch {
	case st.Type != nil:
		if st.Type.Target == "" {
			return fmt.Errorf("type step requires a target")
		}
		line = st.Type.Line
	case st.Say != nil:
		if st.Say.Container == "" || st.Say.Target == "" {
			return fmt.Errorf("say step requires container and target")
		}
		line = st.Say.Line
	case st.WaitDialogue != "":
		line = st.WaitDialogue
	}
	if line != "" {
		if _, ok := cfg.Dialogues[line]; !ok {
			return fmt.Errorf("unknown dialogue line %q", line)
		}
	}
	return nil
}

func validateQuiz(q QuizConfig) error {
	if q.ID == "" {
		return fmt.Errorf("quiz id is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("quiz %q: at least 2 options are required", q.ID)
	}
	correct := 0
	found := false
	for _, o := range q.Options {
		if o.Correct {
			correct++
		}
		if o.Key == q.CorrectAnswer {
			found = true
			if !o.Correct {
				return fmt.Errorf("quiz %q: correctAnswer %q is not marked correct", q.ID, q.CorrectAnswer)
			}
		}
	}
	if !found {
		return fmt.Errorf("quiz %q: correctAnswer %q is not an option", q.ID, q.CorrectAnswer)
	}
	if correct != 1 {
		return fmt.Errorf("quiz %q: exactly one option must be correct, got %d", q.ID, correct)
	}
	return nil
}

func validatePainField(f PainFieldConfig) error {
	if f.Name == "" {
		return fmt.Errorf("pain profile field without name")
	}
	if len(f.Options) == 0 {
		return fmt.Errorf("pain profile field %q has no options", f.Name)
	}
	for _, o := range f.Options {
		if o.Correct {
			return nil
		}
	}
	return fmt.Errorf("pain profile field %q has no correct option", f.Name)
}

// Dialogue 返回对话行文本
func (cfg *CaseConfig) Dialogue(id string) string {
	return cfg.Dialogues[id]
}
