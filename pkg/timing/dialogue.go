package timing

import "strings"

// 对话停留时间参数（毫秒）
// 基础 500ms + 每个单词 180ms，最少 1.2s，最多 3.2s
const (
	DialogueBaseMs    = 500
	DialoguePerWordMs = 180
	DialogueMinMs     = 1200
	DialogueMaxMs     = 3200
)

// WordCount 按空白字符切分统计单词数
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// DialogueWaitTime 根据对话长度计算气泡停留时间（毫秒）
// 模拟自然阅读速度，结果始终落在 [DialogueMinMs, DialogueMaxMs]
func DialogueWaitTime(text string) int {
	ms := DialogueBaseMs + WordCount(text)*DialoguePerWordMs
	return max(DialogueMinMs, min(DialogueMaxMs, ms))
}
