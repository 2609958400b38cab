//go:build ci

package sound

// SoundManager CI 环境下不初始化音频设备
type SoundManager struct{}

func NewSoundManager(string) *SoundManager { return &SoundManager{} }

func (sm *SoundManager) Init() error { return nil }

func (sm *SoundManager) Has(Cue) bool { return false }

func (sm *SoundManager) Play(Cue) {}

func (sm *SoundManager) Close() {}
