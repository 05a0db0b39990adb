package game

import "log"

// Player 音频播放器，*audio.Player 满足此接口
type Player interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// AudioSource 按资源 ID 加载播放器
type AudioSource interface {
	LoadPlayer(resourceID string) (Player, error)
}

// AudioManager 场景媒体播放
//
// 同一时间只有一个播放句柄：Play 先停止当前播放。
// 首次用户输入之前（Unlock 之前）的播放请求只记录最后一个，Unlock 时补播。
// 加载失败只记录日志，不影响流程。
type AudioManager struct {
	source   AudioSource
	settings *SettingsManager // 可为 nil，使用默认音量

	players    map[string]Player
	failed     map[string]bool
	current    Player
	currentRef string

	unlocked bool
	pending  string
}

// NewAudioManager 创建媒体播放管理器
func NewAudioManager(source AudioSource, settings *SettingsManager) *AudioManager {
	return &AudioManager{
		source:   source,
		settings: settings,
		players:  make(map[string]Player),
		failed:   make(map[string]bool),
	}
}

// Play 播放资源，返回是否真正开始播放
func (am *AudioManager) Play(ref string) bool {
	am.Stop()

	if !am.unlocked {
		am.pending = ref
		log.Printf("[AudioManager] Deferred %s until first input", ref)
		return false
	}
	if am.muted() {
		return false
	}

	player := am.player(ref)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", ref, err)
	}
	player.Play()

	am.current = player
	am.currentRef = ref
	return true
}

// Stop 停止当前播放并丢弃未补播的请求
func (am *AudioManager) Stop() {
	am.pending = ""
	if am.current != nil {
		am.current.Pause()
		am.current = nil
		am.currentRef = ""
	}
}

// Unlock 首次用户输入时调用，补播被推迟的请求
func (am *AudioManager) Unlock() {
	if am.unlocked {
		return
	}
	am.unlocked = true
	if ref := am.pending; ref != "" {
		am.pending = ""
		am.Play(ref)
	}
}

// Unlocked 是否已解锁
func (am *AudioManager) Unlocked() bool {
	return am.unlocked
}

// Pending 返回被推迟的请求
func (am *AudioManager) Pending() string {
	return am.pending
}

// Current 返回正在播放的资源 ID，没有则为空
func (am *AudioManager) Current() string {
	if am.current == nil || !am.current.IsPlaying() {
		return ""
	}
	return am.currentRef
}

// SetVolume 修改音量并立即应用到当前播放
func (am *AudioManager) SetVolume(volume float64) {
	if am.settings != nil {
		am.settings.SetVolume(volume)
	}
	if am.current != nil {
		am.current.SetVolume(am.volume())
	}
}

// SetMuted 静音时停止当前播放
func (am *AudioManager) SetMuted(muted bool) {
	if am.settings != nil {
		am.settings.SetMuted(muted)
	}
	if muted {
		am.Stop()
	}
}

// Preload 预加载资源，避免首次播放的延迟
func (am *AudioManager) Preload(refs []string) {
	n := 0
	for _, ref := range refs {
		if am.player(ref) != nil {
			n++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d media", n, len(refs))
}

func (am *AudioManager) player(ref string) Player {
	if p, ok := am.players[ref]; ok {
		return p
	}
	if am.failed[ref] || am.source == nil {
		return nil
	}
	p, err := am.source.LoadPlayer(ref)
	if err != nil {
		// 只记录一次
		am.failed[ref] = true
		log.Printf("[AudioManager] Warning: Failed to load %s: %v", ref, err)
		return nil
	}
	am.players[ref] = p
	return p
}

func (am *AudioManager) volume() float64 {
	if am.settings != nil {
		return am.settings.Preferences().Volume
	}
	return DefaultPreferences().Volume
}

func (am *AudioManager) muted() bool {
	return am.settings != nil && am.settings.Preferences().Muted
}
