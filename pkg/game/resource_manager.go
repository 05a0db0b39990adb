package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrNoAudioContext 没有音频上下文（无头运行或测试）
var ErrNoAudioContext = errors.New("audio context unavailable")

// ResourceManager loads and caches media players and font faces.
//
// Media is referenced by resource id (e.g. "SOUND_PERCUSSION"); the id to
// path table comes from the case configuration. Audio files are read from
// disk so they can be replaced without rebuilding.
//
// Not thread-safe: all access happens on the game loop goroutine.
type ResourceManager struct {
	audioContext  *audio.Context
	audioCache    map[string]*audio.Player    // path -> player
	fontFaceCache map[string]*text.GoTextFace // "path:size" -> face
	fallbackFont  *text.GoTextFaceSource
	resourceMap   map[string]string // resource id -> file path
	readFile      func(string) ([]byte, error)
}

// NewResourceManager creates a ResourceManager. audioContext may be nil, in
// which case every audio load fails with ErrNoAudioContext.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:  audioContext,
		audioCache:    make(map[string]*audio.Player),
		fontFaceCache: make(map[string]*text.GoTextFace),
		resourceMap:   make(map[string]string),
		readFile:      os.ReadFile,
	}
}

// SetResources replaces the resource id -> path table.
func (rm *ResourceManager) SetResources(resources map[string]string) {
	rm.resourceMap = make(map[string]string, len(resources))
	for id, p := range resources {
		rm.resourceMap[id] = p
	}
}

// ResolvePath returns the file path registered for a resource id.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	p, ok := rm.resourceMap[resourceID]
	return p, ok
}

// LoadPlayer loads the media registered under resourceID. It implements
// AudioSource for the AudioManager.
func (rm *ResourceManager) LoadPlayer(resourceID string) (Player, error) {
	p, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, fmt.Errorf("unknown media resource %s", resourceID)
	}
	player, err := rm.LoadSoundEffect(p)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// LoadSoundEffect loads a one-shot audio player from path and caches it.
// Supported formats: MP3 (.mp3) and OGG Vorbis (.ogg).
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cached, ok := rm.audioCache[path]; ok {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, ErrNoAudioContext)
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	stream, err := decodeAudio(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	rm.audioCache[path] = player
	return player, nil
}

// decodeAudio picks the decoder by file extension.
func decodeAudio(path string, r io.ReadSeeker) (io.ReadSeeker, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}
}

// LoadFont loads a TrueType/OpenType face of the given size from path.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cached, ok := rm.fontFaceCache[cacheKey]; ok {
		return cached, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	face := &text.GoTextFace{Source: source, Size: size, Direction: text.DirectionLeftToRight}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// FontOrDefault loads the font at path, falling back to Go Regular when path
// is empty or cannot be loaded.
func (rm *ResourceManager) FontOrDefault(path string, size float64) (*text.GoTextFace, error) {
	if path != "" {
		if face, err := rm.LoadFont(path, size); err == nil {
			return face, nil
		}
	}

	if rm.fallbackFont == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback font source: %w", err)
		}
		rm.fallbackFont = source
	}
	return &text.GoTextFace{Source: rm.fallbackFont, Size: size, Direction: text.DirectionLeftToRight}, nil
}
