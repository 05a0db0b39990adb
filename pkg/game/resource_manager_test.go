package game

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// TestResourceManagerResolve 测试资源表
func TestResourceManagerResolve(t *testing.T) {
	rm := NewResourceManager(nil)
	res := map[string]string{"SOUND_PERCUSSION": "assets/audio/percussion_tap.ogg"}
	rm.SetResources(res)
	res["SOUND_PERCUSSION"] = "changed"

	p, ok := rm.ResolvePath("SOUND_PERCUSSION")
	if !ok || p != "assets/audio/percussion_tap.ogg" {
		t.Errorf("ResolvePath() = %q, %v", p, ok)
	}
	if _, ok := rm.ResolvePath("SOUND_MISSING"); ok {
		t.Error("ResolvePath() of an unknown id should fail")
	}
}

// TestLoadPlayerErrors 测试加载失败的几种情况
func TestLoadPlayerErrors(t *testing.T) {
	rm := NewResourceManager(nil)
	rm.SetResources(map[string]string{"SOUND_PERCUSSION": "assets/audio/percussion_tap.ogg"})

	if _, err := rm.LoadPlayer("SOUND_MISSING"); err == nil {
		t.Error("LoadPlayer() of an unknown id should fail")
	}

	_, err := rm.LoadPlayer("SOUND_PERCUSSION")
	if !errors.Is(err, ErrNoAudioContext) {
		t.Errorf("LoadPlayer() without audio context error = %v, want ErrNoAudioContext", err)
	}
}

// TestDecodeAudio 测试格式判断
func TestDecodeAudio(t *testing.T) {
	tests := []struct {
		path    string
		wantErr string
	}{
		{"a.wav", "unsupported audio format"},
		{"a.ogg", "failed to decode OGG"},
		{"a.MP3", "failed to decode MP3"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := decodeAudio(tt.path, bytes.NewReader([]byte("not audio")))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("decodeAudio(%s) error = %v, want %q", tt.path, err, tt.wantErr)
			}
		})
	}
}

// TestFontOrDefault 测试字体回退
func TestFontOrDefault(t *testing.T) {
	rm := NewResourceManager(nil)

	if _, err := rm.LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 16); err == nil {
		t.Error("LoadFont() of a missing file should fail")
	}

	face, err := rm.FontOrDefault(filepath.Join(t.TempDir(), "missing.ttf"), 18)
	if err != nil {
		t.Fatalf("FontOrDefault() error: %v", err)
	}
	if face == nil || face.Size != 18 {
		t.Fatalf("FontOrDefault() = %+v, want size 18", face)
	}

	again, err := rm.FontOrDefault("", 12)
	if err != nil {
		t.Fatalf("FontOrDefault() error: %v", err)
	}
	if again.Source != face.Source {
		t.Error("fallback font source should be created once")
	}
}
