package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences 用户偏好
// 只保存界面偏好，不保存任何作答或进度
type Preferences struct {
	Volume      float64 `yaml:"volume"`      // 媒体音量 0.0 ~ 1.0
	Muted       bool    `yaml:"muted"`       // 静音
	Fullscreen  bool    `yaml:"fullscreen"`  // 启动时是否全屏
	TypingSpeed float64 `yaml:"typingSpeed"` // 打字速度倍率，1.0 为原速
}

// 打字速度倍率范围
const (
	MinTypingSpeed = 0.25
	MaxTypingSpeed = 4.0
)

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{
		Volume:      0.8,
		TypingSpeed: 1.0,
	}
}

// SettingsManager 偏好管理器
type SettingsManager struct {
	store *gdata.Manager // 为 nil 时只在内存中保存（降级模式）
	prefs *Preferences
}

const (
	settingsObject   = "preferences"
	settingsProperty = "global"
)

// NewSettingsManager 创建偏好管理器并尝试加载已保存的偏好
//
// store 可为 nil（降级模式）。加载失败时记录警告并使用默认值。
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		store: store,
		prefs: DefaultPreferences(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load preferences: %v (using defaults)", err)
	}
	return sm
}

// Persistent 偏好能否持久化
func (sm *SettingsManager) Persistent() bool {
	return sm.store != nil
}

// Load 加载偏好，不存在时使用默认值
func (sm *SettingsManager) Load() error {
	sm.prefs = DefaultPreferences()
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	loaded.TypingSpeed = clampTypingSpeed(loaded.TypingSpeed)

	sm.prefs = loaded
	log.Printf("[SettingsManager] Preferences loaded")
	return nil
}

// Save 保存偏好；降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Preferences 返回当前偏好
func (sm *SettingsManager) Preferences() *Preferences {
	return sm.prefs
}

// SetVolume 设置音量（限制在 0.0 ~ 1.0）
func (sm *SettingsManager) SetVolume(volume float64) {
	sm.prefs.Volume = clampVolume(volume)
}

// SetMuted 设置静音
func (sm *SettingsManager) SetMuted(muted bool) {
	sm.prefs.Muted = muted
}

// SetFullscreen 设置全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.prefs.Fullscreen = enabled
}

// SetTypingSpeed 设置打字速度倍率
func (sm *SettingsManager) SetTypingSpeed(speed float64) {
	sm.prefs.TypingSpeed = clampTypingSpeed(speed)
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

// clampTypingSpeed 0 视为未设置
func clampTypingSpeed(speed float64) float64 {
	switch {
	case speed == 0:
		return 1.0
	case speed < MinTypingSpeed:
		return MinTypingSpeed
	case speed > MaxTypingSpeed:
		return MaxTypingSpeed
	}
	return speed
}
