package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按名称创建场景，创建失败返回 nil
type SceneFactory func(name string) Scene

// SceneManager keeps exactly one active scene and forwards Update/Draw to it.
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager creates a manager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo makes scene the active scene.
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	sm.currentScene = scene
	sm.currentName = name
}

// CurrentScene 返回当前场景，没有时为 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Load 通过工厂创建并切换到指定场景，返回是否成功
func (sm *SceneManager) Load(name string) bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: scene factory not set")
		return false
	}
	scene := sm.sceneFactory(name)
	if scene == nil {
		log.Printf("[SceneManager] Error: cannot create scene %q", name)
		return false
	}
	sm.SwitchTo(name, scene)
	log.Printf("[SceneManager] Switched to scene %q", name)
	return true
}

// Update updates the active scene, if any.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw draws the active scene, if any.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Exit 通知当前场景程序即将退出
func (sm *SceneManager) Exit() {
	if h, ok := sm.currentScene.(ExitHandler); ok {
		h.OnExit()
	}
}
