package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type mockScene struct {
	updates   int
	draws     int
	deltaTime float64
	exited    bool
}

func (m *mockScene) Update(deltaTime float64) {
	m.updates++
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.draws++
}

func (m *mockScene) OnExit() {
	m.exited = true
}

// TestSceneManagerEmpty 测试没有场景时的调用
func TestSceneManagerEmpty(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Exit()

	if sm.CurrentScene() != nil || sm.CurrentName() != "" {
		t.Error("new SceneManager should have no active scene")
	}
	if sm.Load("case") {
		t.Error("Load() without a factory should fail")
	}
}

// TestSceneManagerForwards 测试转发 Update/Draw/Exit
func TestSceneManagerForwards(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo("case", scene)

	sm.Update(0.016)
	sm.Draw(nil)
	sm.Exit()

	if scene.updates != 1 || scene.deltaTime != 0.016 {
		t.Errorf("updates=%d deltaTime=%v", scene.updates, scene.deltaTime)
	}
	if scene.draws != 1 {
		t.Errorf("draws = %d, want 1", scene.draws)
	}
	if !scene.exited {
		t.Error("Exit() should reach the ExitHandler")
	}
}

// TestSceneManagerLoad 测试通过工厂加载
func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	created := &mockScene{}
	sm.SetSceneFactory(func(name string) Scene {
		if name == "case" {
			return created
		}
		return nil
	})

	if sm.Load("unknown") {
		t.Error("Load(unknown) should fail")
	}
	if !sm.Load("case") || sm.CurrentScene() != created || sm.CurrentName() != "case" {
		t.Error("Load(case) should switch to the created scene")
	}
}
