package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pulpcase/pkg/caseplay"
	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/game"
	"github.com/decker502/pulpcase/pkg/navigation"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/utils"
)

// dragRadiansPerPixel 拖动 3D 视图时每像素对应的旋转角度
const dragRadiansPerPixel = 0.01

// slideDistance 场景进入时的滑动距离（像素）
const slideDistance = 40.0

// typingSpeedStep 按键调整打字速度的倍率
const typingSpeedStep = 1.25

var (
	_ game.Scene       = (*CaseScene)(nil)
	_ game.ExitHandler = (*CaseScene)(nil)
)

// CaseScene 病例播放场景
//
// 每帧：处理输入 → 推进虚拟时钟 → 重新布局。绘制和点击检测使用同一份布局。
type CaseScene struct {
	play     *caseplay.Case
	audio    *game.AudioManager
	settings *game.SettingsManager

	fonts   map[float64]*text.GoTextFace
	measure TextMeasure
	layout  Layout

	elapsedMs   float64
	enteredAtMs float64
	lastScene   int

	drag utils.DragTracker
}

// NewCaseScene 创建病例播放场景
//
// rm 为 nil 时不加载字体（只布局不绘制文字，测试使用）；audio 和 settings 可为 nil。
func NewCaseScene(play *caseplay.Case, rm *game.ResourceManager, audio *game.AudioManager, settings *game.SettingsManager) *CaseScene {
	s := &CaseScene{
		play:      play,
		audio:     audio,
		settings:  settings,
		fonts:     make(map[float64]*text.GoTextFace),
		lastScene: play.Session.CurrentScene,
	}
	if rm != nil {
		for _, size := range []float64{config.TitleFontSize, config.BodyFontSize, config.SmallFontSize} {
			face, err := rm.FontOrDefault(config.FontPath, size)
			if err != nil {
				log.Printf("[CaseScene] Warning: Failed to load font (size %.0f): %v", size, err)
				continue
			}
			s.fonts[size] = face
		}
	}
	s.measure = s.measureText
	s.relayout()
	return s
}

// measureText 有字体时精确测量，否则按平均字宽估算
func (s *CaseScene) measureText(str string, size float64) float64 {
	if face := s.fonts[size]; face != nil {
		w, _ := text.Measure(str, face, 0)
		return w
	}
	return float64(utf8.RuneCountInString(str)) * size * 0.55
}

// Layout 返回最近一次布局
func (s *CaseScene) Layout() Layout {
	return s.layout
}

func (s *CaseScene) relayout() {
	s.layout = BuildLayout(s.play.Board, s.play.Session.CurrentScene, s.measure)
}

// Update 实现 game.Scene
func (s *CaseScene) Update(deltaTime float64) {
	s.step(deltaTime*1000, utils.ReadPointer(), inpututil.AppendJustPressedKeys(nil))
}

func (s *CaseScene) step(dtMs float64, p utils.PointerState, keys []ebiten.Key) {
	s.elapsedMs += dtMs

	s.handlePointer(p)
	for _, k := range keys {
		s.handleKey(k)
	}

	s.play.Update(dtMs)

	if cur := s.play.Session.CurrentScene; cur != s.lastScene {
		s.lastScene = cur
		s.enteredAtMs = s.elapsedMs
	}
	s.relayout()
}

func (s *CaseScene) handlePointer(p utils.PointerState) {
	if s.drag.IsDragging() {
		dx, dy := s.drag.Update(p)
		s.play.Viewer.Rotate(float64(dx)*dragRadiansPerPixel, float64(dy)*dragRadiansPerPixel)
		if !s.drag.IsDragging() {
			s.play.Viewer.SetDragging(false)
		}
		return
	}
	if !p.JustPressed {
		return
	}

	s.play.Unlock()
	x, y := float64(p.X), float64(p.Y)
	if box, ok := s.layout.Box(caseplay.ModelContainerID); ok && s.play.Viewer.Mounted() && box.Contains(x, y) {
		s.drag.Begin(p.X, p.Y)
		s.play.Viewer.SetDragging(true)
		return
	}
	if e := s.layout.HitTest(x, y); e != nil {
		s.play.Click(e.ID)
	}
}

func (s *CaseScene) handleKey(k ebiten.Key) {
	s.play.Unlock()
	switch k {
	case ebiten.KeyArrowRight:
		s.play.Click(navigation.NextButtonID)
	case ebiten.KeyArrowLeft:
		s.play.Click(navigation.PrevButtonID)
	case ebiten.KeyM:
		if s.audio != nil && s.settings != nil {
			muted := !s.settings.Preferences().Muted
			s.audio.SetMuted(muted)
			log.Printf("[CaseScene] Muted: %v", muted)
		}
	case ebiten.KeyEqual, ebiten.KeyMinus:
		if s.settings == nil {
			return
		}
		speed := s.settings.Preferences().TypingSpeed
		if k == ebiten.KeyEqual {
			speed *= typingSpeedStep
		} else {
			speed /= typingSpeedStep
		}
		s.settings.SetTypingSpeed(speed)
		s.play.Typewriter.SpeedScale = s.settings.Preferences().TypingSpeed
		log.Printf("[CaseScene] Typing speed: %.2fx", s.play.Typewriter.SpeedScale)
	}
}

// OnExit 实现 game.ExitHandler：保存用户偏好
func (s *CaseScene) OnExit() {
	if s.settings == nil {
		return
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[CaseScene] Warning: Failed to save preferences: %v", err)
	}
}

// slideOffset 场景进入动画的水平偏移，倒退进入时从左侧滑入
func (s *CaseScene) slideOffset() float64 {
	transition := s.play.Nav.TransitionMs
	if transition <= 0 {
		return 0
	}
	progress := utils.Clamp01((s.elapsedMs - s.enteredAtMs) / transition)
	offset := (1 - utils.EaseOutCubic(progress)) * slideDistance
	if s.play.Board.HasClass(navigation.SceneID(s.layout.Scene), surface.ClassEnterReverse) {
		offset = -offset
	}
	return offset
}

func (s *CaseScene) cursorOn() bool {
	return int(s.elapsedMs/config.CursorBlinkMs)%2 == 0
}

// Draw 实现 game.Scene
func (s *CaseScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.ColorBackground)

	offset := s.slideOffset()
	s.drawText(screen, s.layout.Title, config.TitleFontSize, config.ContentX+offset, config.TitleY, config.ColorText)

	for _, b := range s.layout.Boxes {
		if !b.Chrome {
			b.X += offset
		}
		s.drawBox(screen, b)
	}
}

func (s *CaseScene) drawBox(screen *ebiten.Image, b Box) {
	e := b.Element
	switch e.Kind {
	case surface.KindMeter:
		fillRect(screen, b.X, b.Y, b.W, b.H, config.ColorProgressTrack)
		fillRect(screen, b.X, b.Y, b.W*utils.Clamp01(e.Width/100), b.H, config.ColorAccent)

	case surface.KindBubble:
		bg := config.ColorBubblePatient
		if b.Speaker == "Doctor" {
			bg = config.ColorBubbleDoctor
		}
		fillRect(screen, b.X, b.Y, b.W, b.H, bg)
		y := b.Y + config.BubblePadding
		if b.Speaker != "" {
			s.drawText(screen, b.Speaker, config.SmallFontSize, b.X+config.BubblePadding, y, config.ColorMuted)
			y += config.LineHeight(config.SmallFontSize)
		}
		s.drawLines(screen, b, b.X+config.BubblePadding, y, config.ColorText)

	case surface.KindOption:
		fillRect(screen, b.X, b.Y, b.W, b.H, optionColor(e))
		strokeRect(screen, b.X, b.Y, b.W, b.H, 1, config.ColorOptionBorder)
		clr := config.ColorText
		if e.Disabled {
			clr = config.ColorMuted
		}
		lh := config.LineHeight(b.Size)
		y := b.Y + (b.H-float64(len(b.Lines))*lh)/2
		s.drawLines(screen, b, b.X+config.BubblePadding, y, clr)

	case surface.KindButton:
		bg := config.ColorButton
		if e.Disabled {
			bg = config.ColorButtonDisabled
		}
		fillRect(screen, b.X, b.Y, b.W, b.H, bg)
		if e.HasClass(surface.ClassPicked) {
			strokeRect(screen, b.X-2, b.Y-2, b.W+4, b.H+4, 2, config.ColorText)
		}
		s.drawCentered(screen, e.Text, b, config.ColorButtonText)

	case surface.KindViewport:
		fillRect(screen, b.X, b.Y, b.W, b.H, config.ColorViewport)
		s.play.Viewer.Draw(screen, image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H)))

	case surface.KindFeedback:
		bg := config.ColorIncorrect
		if e.HasClass(surface.ClassCorrectFeedback) {
			bg = config.ColorCorrect
		}
		fillRect(screen, b.X-config.BubblePadding/2, b.Y, b.W+config.BubblePadding, b.H, bg)
		s.drawLines(screen, b, b.X, b.Y, config.ColorText)

	default:
		if e.ID == navigation.SceneNumberID {
			label := fmt.Sprintf("%s / %d", e.Text, s.play.Session.TotalScenes)
			s.drawCentered(screen, label, b, config.ColorMuted)
			return
		}
		s.drawLines(screen, b, b.X, b.Y, config.ColorText)
	}
}

// optionColor 根据作答样式类选择选项底色
func optionColor(e *surface.Element) color.Color {
	switch {
	case e.HasClass(surface.ClassSelectedIncorrect), e.HasClass(surface.ClassIncorrect):
		return config.ColorIncorrect
	case e.HasClass(surface.ClassSelectedCorrect), e.HasClass(surface.ClassShowCorrect), e.HasClass(surface.ClassCorrect):
		return config.ColorCorrect
	case e.HasClass(surface.ClassSelected):
		return config.ColorSelected
	default:
		return config.ColorOption
	}
}

func (s *CaseScene) drawLines(screen *ebiten.Image, b Box, x, y float64, clr color.Color) {
	lh := config.LineHeight(b.Size)
	for i, line := range b.Lines {
		if b.Cursor && i == len(b.Lines)-1 && s.cursorOn() {
			line += "|"
		}
		s.drawText(screen, line, b.Size, x, y+float64(i)*lh, clr)
	}
}

func (s *CaseScene) drawCentered(screen *ebiten.Image, str string, b Box, clr color.Color) {
	w := s.measure(str, b.Size)
	x := b.X + (b.W-w)/2
	y := b.Y + (b.H-b.Size*1.2)/2
	s.drawText(screen, str, b.Size, x, y, clr)
}

func (s *CaseScene) drawText(screen *ebiten.Image, str string, size, x, y float64, clr color.Color) {
	face := s.fonts[size]
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h, width float64, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), float32(width), clr, false)
}
