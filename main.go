// pulpcase 牙髓炎交互式临床病例
//
// 用法:
//
//	pulpcase [--verbose] [--scene N] [--typing-speed X]
//
// 环境变量 PULPCASE_VERBOSE、PULPCASE_START_SCENE、PULPCASE_TYPING_SPEED、
// PULPCASE_CASE_DIR 覆盖同名参数。
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pulpcase/pkg/app"
	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/embedded"
)

var (
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging")
	sceneFlag       = flag.Int("scene", 0, "Scene index to start from (debugging)")
	typingSpeedFlag = flag.Float64("typing-speed", 0, "Typing speed multiplier, overrides saved preference when > 0")
)

func main() {
	flag.Parse()

	cfg := app.Config{
		Verbose:     *verboseFlag,
		StartScene:  *sceneFlag,
		TypingSpeed: *typingSpeedFlag,
	}
	if err := app.ApplyEnv(&cfg); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	embedded.Init(dataFS)

	caseApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Acute Reversible Pulpitis - Interactive Case")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(caseApp); err != nil {
		log.Fatal(err)
	}

	// 关闭时保存偏好
	caseApp.GetSceneManager().Exit()
}
