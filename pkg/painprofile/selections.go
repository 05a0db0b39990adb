// Package painprofile 实现疼痛特征问卷：单选/多选字段、完整性检查与提交判分
package painprofile

import "slices"

// RequiredFields 必填字段（固定顺序）
var RequiredFields = []string{"status", "character", "duration", "triggers"}

// Selections 每个字段的已选值
// 单选字段至多一个值；多选字段按点击顺序累积
type Selections struct {
	values map[string][]string
}

// NewSelections 创建空的选择集
func NewSelections() *Selections {
	return &Selections{values: make(map[string][]string)}
}

// Set 单选：替换字段的值
func (s *Selections) Set(field, value string) {
	s.values[field] = []string{value}
}

// Toggle 多选：切换值的选中状态，返回切换后是否选中
func (s *Selections) Toggle(field, value string) bool {
	cur := s.values[field]
	if i := slices.Index(cur, value); i >= 0 {
		s.values[field] = slices.Delete(slices.Clone(cur), i, i+1)
		return false
	}
	s.values[field] = append(slices.Clone(cur), value)
	return true
}

// Get 返回字段已选值的副本
func (s *Selections) Get(field string) []string {
	return slices.Clone(s.values[field])
}

// Has 报告字段是否选中了 value
func (s *Selections) Has(field, value string) bool {
	return slices.Contains(s.values[field], value)
}

// IsComplete 报告所有必填字段是否都至少有一个值
func (s *Selections) IsComplete(required []string) bool {
	for _, f := range required {
		if len(s.values[f]) == 0 {
			return false
		}
	}
	return true
}

// Flatten 按字段顺序返回 "field=value" 列表，用于作答记录
func (s *Selections) Flatten(fields []string) []string {
	var out []string
	for _, f := range fields {
		for _, v := range s.values[f] {
			out = append(out, f+"="+v)
		}
	}
	return out
}

// Len 返回有值的字段数
func (s *Selections) Len() int {
	n := 0
	for _, v := range s.values {
		if len(v) > 0 {
			n++
		}
	}
	return n
}

// Clear 清空所有选择
func (s *Selections) Clear() {
	s.values = make(map[string][]string)
}
