package game

import (
	"errors"
	"testing"
)

type fakePlayer struct {
	playing bool
	volume  float64
	plays   int
	rewinds int
}

func (p *fakePlayer) Play()                    { p.playing = true; p.plays++ }
func (p *fakePlayer) Pause()                   { p.playing = false }
func (p *fakePlayer) Rewind() error            { p.rewinds++; return nil }
func (p *fakePlayer) SetVolume(volume float64) { p.volume = volume }
func (p *fakePlayer) IsPlaying() bool          { return p.playing }

type fakeSource struct {
	players map[string]*fakePlayer
	loads   int
}

func newFakeSource(refs ...string) *fakeSource {
	s := &fakeSource{players: make(map[string]*fakePlayer)}
	for _, ref := range refs {
		s.players[ref] = &fakePlayer{}
	}
	return s
}

func (s *fakeSource) LoadPlayer(ref string) (Player, error) {
	s.loads++
	p, ok := s.players[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

// TestAudioManagerDeferredUntilUnlock 测试首次输入前的播放请求被推迟
func TestAudioManagerDeferredUntilUnlock(t *testing.T) {
	src := newFakeSource("A", "B")
	am := NewAudioManager(src, nil)

	if am.Play("A") {
		t.Error("Play() before Unlock() should be deferred")
	}
	am.Play("B")
	if am.Pending() != "B" {
		t.Errorf("Pending() = %q, want B", am.Pending())
	}

	am.Unlock()
	if src.players["A"].plays != 0 || src.players["B"].plays != 1 {
		t.Errorf("plays A=%d B=%d, want only the last request replayed", src.players["A"].plays, src.players["B"].plays)
	}
	if am.Current() != "B" {
		t.Errorf("Current() = %q, want B", am.Current())
	}

	am.Unlock()
	if src.players["B"].plays != 1 {
		t.Error("second Unlock() must not replay")
	}
}

// TestAudioManagerStopDropsPending 测试进入新场景时丢弃推迟的请求
func TestAudioManagerStopDropsPending(t *testing.T) {
	src := newFakeSource("A")
	am := NewAudioManager(src, nil)

	am.Play("A")
	am.Stop()
	am.Unlock()

	if src.players["A"].plays != 0 {
		t.Error("stopped request must not be replayed")
	}
}

// TestAudioManagerSingleHandle 测试同一时间只播放一个资源
func TestAudioManagerSingleHandle(t *testing.T) {
	src := newFakeSource("A", "B")
	am := NewAudioManager(src, nil)
	am.Unlock()

	am.Play("A")
	am.Play("B")
	if src.players["A"].playing {
		t.Error("Play() should stop the current item first")
	}
	if !src.players["B"].playing || src.players["B"].volume != DefaultPreferences().Volume {
		t.Errorf("B playing=%v volume=%v", src.players["B"].playing, src.players["B"].volume)
	}

	am.Stop()
	if am.Current() != "" || src.players["B"].playing {
		t.Error("Stop() should pause the current item")
	}
}

// TestAudioManagerLoadFailure 测试加载失败只尝试一次
func TestAudioManagerLoadFailure(t *testing.T) {
	src := newFakeSource()
	am := NewAudioManager(src, nil)
	am.Unlock()

	if am.Play("MISSING") || am.Play("MISSING") {
		t.Error("Play() of a missing resource should fail")
	}
	if src.loads != 1 {
		t.Errorf("loads = %d, want 1", src.loads)
	}
}

// TestAudioManagerSettings 测试音量与静音
func TestAudioManagerSettings(t *testing.T) {
	src := newFakeSource("A")
	sm := NewSettingsManager(nil)
	am := NewAudioManager(src, sm)
	am.Unlock()

	am.Play("A")
	am.SetVolume(0.25)
	if got := src.players["A"].volume; got != 0.25 {
		t.Errorf("volume = %v, want 0.25", got)
	}

	am.SetMuted(true)
	if src.players["A"].playing {
		t.Error("muting should stop playback")
	}
	if am.Play("A") {
		t.Error("Play() while muted should fail")
	}
}
