package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one full-screen state of the application (the case player).
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene onto screen.
	Draw(screen *ebiten.Image)
}

// ExitHandler 可选接口：程序关闭时调用 OnExit，用于保存用户偏好
type ExitHandler interface {
	OnExit()
}
