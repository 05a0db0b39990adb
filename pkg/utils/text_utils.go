package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureFunc 测量一行文本的像素宽度
type MeasureFunc func(s string) float64

// FaceMeasure 返回使用指定字体测量宽度的 MeasureFunc
func FaceMeasure(face text.Face) MeasureFunc {
	return func(s string) float64 {
		if s == "" || face == nil {
			return 0
		}
		width, _ := text.Measure(s, face, 0)
		return width
	}
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - measure: 宽度测量函数
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 显式的 "\n" 总是换行
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，按字符强制断行
func WrapText(textStr string, measure MeasureFunc, maxWidth float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, measure, maxWidth)...)
	}
	return lines
}

func wrapParagraph(paragraph string, measure MeasureFunc, maxWidth float64) []string {
	if measure(paragraph) <= maxWidth {
		return []string{paragraph}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(paragraph) {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}
		// 单词本身超宽，按字符断开
		for measure(word) > maxWidth {
			head := breakWord(word, measure, maxWidth)
			lines = append(lines, head)
			word = word[len(head):]
		}
		currentLine = word
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// breakWord 返回 word 在 maxWidth 内能放下的最长前缀（至少一个字符）
func breakWord(word string, measure MeasureFunc, maxWidth float64) string {
	end := 0
	for i, r := range word {
		next := i + len(string(r))
		if end > 0 && measure(word[:next]) > maxWidth {
			break
		}
		end = next
	}
	return word[:end]
}
