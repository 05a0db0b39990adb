//go:build !mobile

package utils

import "os"

// IsMobile 桌面端返回 false
// 设置 PULPCASE_MOBILE_EMULATE=1 可在桌面上模拟移动端（无全屏快捷键、无窗口尺寸调整）
func IsMobile() bool {
	return os.Getenv("PULPCASE_MOBILE_EMULATE") == "1"
}
