//go:build !ci

// Package sound 播放出牌提示音，资源目录缺失时静默
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager 按文件名（不含扩展名）缓存音效
type SoundManager struct {
	dir     string
	buffers map[Cue]*beep.Buffer
	enabled bool
	mu      sync.RWMutex
}

// NewSoundManager 创建音效管理器，dir 为音效目录
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init 初始化扬声器并加载音效
func (sm *SoundManager) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	if err := sm.load(); err != nil {
		return err
	}

	sm.mu.Lock()
	sm.enabled = true
	sm.mu.Unlock()
	return nil
}

// load 读取目录下的 mp3/wav，单个文件失败不影响其他
func (sm *SoundManager) load() error {
	files, err := os.ReadDir(sm.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		buf, err := decodeFile(filepath.Join(sm.dir, file.Name()), ext)
		if err != nil {
			continue
		}
		sm.mu.Lock()
		sm.buffers[Cue(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))] = buf
		sm.mu.Unlock()
	}
	return nil
}

func decodeFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4})
	buf.Append(s)
	return buf, nil
}

// Has 是否已加载该音效
func (sm *SoundManager) Has(cue Cue) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, ok := sm.buffers[cue]
	return ok
}

// Play 播放音效，未启用或未加载时忽略
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.RLock()
	buf, ok := sm.buffers[cue]
	enabled := sm.enabled
	sm.mu.RUnlock()
	if !enabled || !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// Close 停止播放
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	sm.enabled = false
	sm.mu.Unlock()
}
