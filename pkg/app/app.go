// Package app 提供病例播放应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"maps"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/pulpcase/pkg/caseplay"
	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/embedded"
	"github.com/decker502/pulpcase/pkg/game"
	"github.com/decker502/pulpcase/pkg/scenes"
	"github.com/decker502/pulpcase/pkg/utils"
)

// CaseSceneName 场景管理器中病例场景的名称
const CaseSceneName = "case"

// appName gdata 存储目录名
const appName = "pulpcase"

// Config 定义应用启动配置
//
// 命令行参数先填入，环境变量（若设置）覆盖对应字段。
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"PULPCASE_VERBOSE"`
	// StartScene 起始场景索引（调试用），越界时从 0 开始
	StartScene int `env:"PULPCASE_START_SCENE"`
	// TypingSpeed 打字速度倍率，>0 时覆盖已保存的偏好
	TypingSpeed float64 `env:"PULPCASE_TYPING_SPEED"`
	// CaseDir 病例内容目录
	CaseDir string `env:"PULPCASE_CASE_DIR"`
}

// ApplyEnv 用环境变量覆盖配置
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	play                     *caseplay.Case
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	caseDir := cfg.CaseDir
	if caseDir == "" {
		caseDir = config.DefaultCaseDir
	}
	caseConfig, err := config.LoadCaseConfig(caseDir, embedded.ReadFileOrDisk)
	if err != nil {
		return nil, fmt.Errorf("病例内容加载失败: %w", err)
	}
	log.Printf("[App] Loaded case from %s: %d scenes, %d quizzes", caseDir, len(caseConfig.Scenes), len(caseConfig.Quizzes))

	// 偏好存储不可用时降级为只在内存中保存
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open preferences store: %v (preferences will not persist)", err)
		store = nil
	}
	settings := game.NewSettingsManager(store)
	if cfg.TypingSpeed > 0 {
		settings.SetTypingSpeed(cfg.TypingSpeed)
	}
	prefs := settings.Preferences()
	if prefs.Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	resourceManager := game.NewResourceManager(audioContext)
	resourceManager.SetResources(caseConfig.Resources)

	audioManager := game.NewAudioManager(resourceManager, settings)
	audioManager.Preload(slices.Sorted(maps.Keys(caseConfig.Resources)))
	log.Printf("[App] AudioManager initialized")

	play := caseplay.New(caseConfig, caseplay.Options{
		Media:       audioManager,
		ReadFile:    embedded.ReadFileOrDisk,
		TypingSpeed: prefs.TypingSpeed,
	})
	play.Start(cfg.StartScene)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name != CaseSceneName {
			return nil
		}
		return scenes.NewCaseScene(play, resourceManager, audioManager, settings)
	})
	if !sceneManager.Load(CaseSceneName) {
		return nil, fmt.Errorf("failed to create scene %q", CaseSceneName)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		play:         play,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（仅桌面端）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!a.settings.Preferences().Fullscreen)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在关闭时保存偏好
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Case 返回病例播放状态
func (a *App) Case() *caseplay.Case {
	return a.play
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
