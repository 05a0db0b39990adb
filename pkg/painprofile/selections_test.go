package painprofile

import "testing"

// TestSelectionsIsComplete 测试完整性判断
func TestSelectionsIsComplete(t *testing.T) {
	s := NewSelections()
	if s.IsComplete(RequiredFields) {
		t.Error("empty selections should be incomplete")
	}

	s.Set("status", "provoked")
	s.Set("character", "sharp")
	s.Set("duration", "seconds")
	if s.IsComplete(RequiredFields) {
		t.Error("missing triggers should be incomplete")
	}

	s.Toggle("triggers", "cold")
	if !s.IsComplete(RequiredFields) {
		t.Error("all fields filled should be complete")
	}

	s.Toggle("triggers", "cold")
	if s.IsComplete(RequiredFields) {
		t.Error("emptied multi field should be incomplete")
	}
}

// TestSelectionsGetIsCopy 测试 Get 返回副本
func TestSelectionsGetIsCopy(t *testing.T) {
	s := NewSelections()
	s.Toggle("triggers", "cold")

	got := s.Get("triggers")
	got[0] = "hot"
	if !s.Has("triggers", "cold") {
		t.Error("mutating Get result must not change selections")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("Clear should empty selections")
	}
}
