//go:build !ci

package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, silence(rate.N(50*time.Millisecond)), format))
}

func silence(n int) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n <= 0 {
			return 0, false
		}
		m := min(n, len(samples))
		clear(samples[:m])
		n -= m
		return m, true
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "turn.wav"), sampleRate)
	writeWav(t, filepath.Join(dir, "uno.WAV"), 22050)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "win.wav"), []byte("not audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))

	sm := NewSoundManager(dir)
	require.NoError(t, sm.load())

	assert.True(t, sm.Has(CueTurn))
	assert.True(t, sm.Has(CueUno), "resampled")
	assert.False(t, sm.Has(CueWin), "undecodable file skipped")
	assert.False(t, sm.Has(Cue("readme")))

	// 未初始化扬声器时播放为空操作
	sm.Play(CueTurn)
}

func TestLoad_MissingDir(t *testing.T) {
	t.Parallel()

	sm := NewSoundManager(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, sm.load())
	assert.False(t, sm.Has(CueTurn))
}
