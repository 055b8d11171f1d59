// Package audio plays death and reset feedback sounds.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/dodge/config"
)

// SoundManager owns the speaker and a mixer every sound is added to.
// All methods are no-ops until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	deathTone   float64
	resetTone   float64
	initialized bool
}

// NewSoundManager creates a sound manager from audio settings.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	return &SoundManager{
		mixer:     &beep.Mixer{},
		rate:      beep.SampleRate(cfg.SampleRate),
		volume:    cfg.Volume,
		deathTone: cfg.DeathTone,
		resetTone: cfg.ResetTone,
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// PlayDeath plays the falling death tone.
func (sm *SoundManager) PlayDeath() {
	sm.play(DeathSound(sm.deathTone, sm.volume, sm.rate))
}

// PlayReset plays the short reset blip.
func (sm *SoundManager) PlayReset() {
	sm.play(ResetSound(sm.resetTone, sm.volume, sm.rate))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// The mixer is read by the speaker goroutine
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
