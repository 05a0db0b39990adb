package utils

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

// fixedMeasure 每个字符 10 像素
func fixedMeasure(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{
			name:     "短文本不换行",
			input:    "short",
			maxWidth: 1000,
			want:     []string{"short"},
		},
		{
			name:     "在空格处换行",
			input:    "the pain subsided after a few seconds",
			maxWidth: 120,
			want:     []string{"the pain", "subsided", "after a few", "seconds"},
		},
		{
			name:     "显式换行",
			input:    "Thermal  ✅ Correct\nDiagnosis  ❌ Incorrect",
			maxWidth: 1000,
			want:     []string{"Thermal  ✅ Correct", "Diagnosis  ❌ Incorrect"},
		},
		{
			name:     "超长单词按字符断开",
			input:    "abcdefghij",
			maxWidth: 40,
			want:     []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "多字节字符断开",
			input:    "μμμμμ",
			maxWidth: 20,
			want:     []string{"μμ", "μμ", "μ"},
		},
		{
			name:     "空文本",
			input:    "",
			maxWidth: 100,
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, fixedMeasure, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q, %.0f) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		measure  MeasureFunc
		maxWidth float64
	}{
		{name: "nil measure", measure: nil, maxWidth: 100},
		{name: "zero maxWidth", measure: fixedMeasure, maxWidth: 0},
		{name: "negative maxWidth", measure: fixedMeasure, maxWidth: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText("some text", tt.measure, tt.maxWidth)
			if len(lines) != 1 || lines[0] != "some text" {
				t.Errorf("期望返回原文本，实际得到 %q", lines)
			}
		})
	}
}

func TestFaceMeasureNilFace(t *testing.T) {
	if got := FaceMeasure(nil)("abc"); got != 0 {
		t.Errorf("FaceMeasure(nil) = %v, want 0", got)
	}
}
