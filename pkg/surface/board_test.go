package surface

import (
	"reflect"
	"testing"
)

func newTestBoard() *Board {
	b := NewBoard()
	b.Register(Element{ID: "scene-1", Kind: KindScene, Scene: 1})
	b.Register(Element{ID: "bubble-1a", Kind: KindBubble, Scene: 1})
	b.Register(Element{ID: "dialogue-1a", Kind: KindText, Scene: 1, Parent: "bubble-1a", Visible: true})
	b.Register(Element{ID: "btn-scene-1", Kind: KindButton, Scene: 1, Text: "Continue"})
	return b
}

// TestBoardUnknownIDIsNoop 测试未知 ID 的所有操作都是空操作
func TestBoardUnknownIDIsNoop(t *testing.T) {
	b := newTestBoard()

	// 不应 panic
	b.Show("missing")
	b.Hide("missing")
	b.WriteText("missing", "x")
	b.AppendChar("missing", 'x')
	b.SetCursor("missing", true)
	b.AddClass("missing", ClassActive)
	b.RemoveClass("missing", ClassActive)
	b.SetDisabled("missing", true)
	b.SetWidth("missing", 50)

	if b.Exists("missing") {
		t.Error("Exists(missing) = true")
	}
	if b.HasClass("missing", ClassActive) {
		t.Error("HasClass on missing element = true")
	}
}

// TestBoardTextAndVisibility 测试文本与可见性
func TestBoardTextAndVisibility(t *testing.T) {
	b := newTestBoard()

	b.Show("bubble-1a")
	b.Show("bubble-1a")
	if !b.Element("bubble-1a").Visible {
		t.Error("bubble-1a should be visible")
	}

	b.WriteText("dialogue-1a", "")
	for _, r := range "Hi🍦" {
		b.AppendChar("dialogue-1a", r)
	}
	if got := b.Element("dialogue-1a").Text; got != "Hi🍦" {
		t.Errorf("Text = %q, want %q", got, "Hi🍦")
	}

	b.SetWidth("btn-scene-1", 140)
	if got := b.Element("btn-scene-1").Width; got != 100 {
		t.Errorf("Width clamp = %v, want 100", got)
	}
}

// TestBoardReset 测试 Reset 恢复注册时状态
func TestBoardReset(t *testing.T) {
	b := newTestBoard()

	b.Show("btn-scene-1")
	b.WriteText("btn-scene-1", "Changed")
	b.AddClass("scene-1", ClassActive)
	b.SetDisabled("btn-scene-1", true)

	b.Reset()

	el := b.Element("btn-scene-1")
	if el.Visible || el.Text != "Continue" || el.Disabled {
		t.Errorf("after Reset: visible=%v text=%q disabled=%v", el.Visible, el.Text, el.Disabled)
	}
	if b.HasClass("scene-1", ClassActive) {
		t.Error("classes should be cleared by Reset")
	}
	if !b.Element("dialogue-1a").Visible {
		t.Error("initially visible element should stay visible after Reset")
	}
}

// TestBoardOrder 测试注册顺序与场景过滤
func TestBoardOrder(t *testing.T) {
	b := newTestBoard()
	b.Register(Element{ID: "bubble-1a", Kind: KindBubble, Scene: 1})

	var ids []string
	for _, el := range b.SceneElements(1) {
		ids = append(ids, el.ID)
	}
	want := []string{"bubble-1a", "dialogue-1a", "btn-scene-1"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SceneElements(1) = %v, want %v", ids, want)
	}
}

// TestRecorder 测试记录器
func TestRecorder(t *testing.T) {
	r := NewRecorder(newTestBoard())

	r.Show("bubble-1a")
	r.Hide("bubble-1a")
	r.Show("btn-scene-1")
	_ = r.Exists("bubble-1a")

	if got := r.Count("show", ""); got != 2 {
		t.Errorf("Count(show) = %d, want 2", got)
	}
	if got := r.Count("hide", "bubble-1a"); got != 1 {
		t.Errorf("Count(hide, bubble-1a) = %d, want 1", got)
	}
	if len(r.Calls) != 3 {
		t.Errorf("len(Calls) = %d, want 3 (queries are not recorded)", len(r.Calls))
	}
	if got := r.Calls[0].String(); got != "show(bubble-1a)" {
		t.Errorf("Calls[0] = %q", got)
	}
}
