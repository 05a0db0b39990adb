package surface

import "fmt"

// Call 一次被记录的演示层操作
type Call struct {
	Op  string
	ID  string
	Arg string
}

func (c Call) String() string {
	if c.Arg == "" {
		return fmt.Sprintf("%s(%s)", c.Op, c.ID)
	}
	return fmt.Sprintf("%s(%s, %s)", c.Op, c.ID, c.Arg)
}

// Recorder 记录所有可见副作用（Show/Hide/WriteText/AppendChar/...）的 Surface 装饰器
// 只读查询（Exists/HasClass）不记录。用于测试断言和 cmd/verify_sequence 输出时间线。
type Recorder struct {
	Surface
	Calls []Call

	// OnCall 每次记录后回调，可为 nil
	OnCall func(Call)
}

// NewRecorder 包装一个 Surface
func NewRecorder(inner Surface) *Recorder {
	return &Recorder{Surface: inner}
}

func (r *Recorder) record(op, id, arg string) {
	c := Call{Op: op, ID: id, Arg: arg}
	r.Calls = append(r.Calls, c)
	if r.OnCall != nil {
		r.OnCall(c)
	}
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count 统计指定操作和 ID 的调用次数；id 为空时匹配所有 ID
func (r *Recorder) Count(op, id string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op && (id == "" || c.ID == id) {
			n++
		}
	}
	return n
}

func (r *Recorder) Show(id string) {
	r.record("show", id, "")
	r.Surface.Show(id)
}

func (r *Recorder) Hide(id string) {
	r.record("hide", id, "")
	r.Surface.Hide(id)
}

func (r *Recorder) WriteText(id, text string) {
	r.record("write", id, text)
	r.Surface.WriteText(id, text)
}

func (r *Recorder) AppendChar(id string, ch rune) {
	r.record("append", id, string(ch))
	r.Surface.AppendChar(id, ch)
}

func (r *Recorder) SetCursor(id string, on bool) {
	r.record("cursor", id, fmt.Sprint(on))
	r.Surface.SetCursor(id, on)
}

func (r *Recorder) AddClass(id, class string) {
	r.record("addClass", id, class)
	r.Surface.AddClass(id, class)
}

func (r *Recorder) RemoveClass(id, class string) {
	r.record("removeClass", id, class)
	r.Surface.RemoveClass(id, class)
}

func (r *Recorder) SetDisabled(id string, disabled bool) {
	r.record("disabled", id, fmt.Sprint(disabled))
	r.Surface.SetDisabled(id, disabled)
}

func (r *Recorder) SetWidth(id string, percent float64) {
	r.record("width", id, fmt.Sprintf("%.0f", percent))
	r.Surface.SetWidth(id, percent)
}
