// Package sequencer 按场景脚本驱动演示流程
//
// 每次进入场景都会分配新的 generation 并捕获为 Token。
// 脚本在每个等待、每次打字完成之后以及每个副作用之前检查 Token，
// 一旦场景已被切换（或同一场景被重新进入），旧序列静默终止。
package sequencer

import "github.com/decker502/pulpcase/pkg/session"

// Token 一次场景执行的身份
type Token struct {
	session    *session.Session
	generation uint64
	scene      int
}

// NewToken 以会话当前状态创建 Token
func NewToken(s *session.Session) Token {
	return Token{session: s, generation: s.Generation(), scene: s.CurrentScene}
}

// IsCurrent 当前代号与场景索引都未变化时返回 true
func (t Token) IsCurrent() bool {
	if t.session == nil {
		return false
	}
	return t.session.Generation() == t.generation && t.session.CurrentScene == t.scene
}

// Scene 返回捕获时的场景索引
func (t Token) Scene() int {
	return t.scene
}

// Generation 返回捕获时的代号
func (t Token) Generation() uint64 {
	return t.generation
}
