package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound durations.
const (
	DeathDuration = 400 * time.Millisecond
	ResetDuration = 80 * time.Millisecond
	fadeOut       = 30 * time.Millisecond
)

// sweep is a sine tone gliding linearly from one frequency to another.
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewSweep creates a tone that glides from one frequency to another over duration.
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2 * math.Pi * s.phase)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// fade ramps a stream down to silence over its last samples.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

// NewFade limits s to duration and fades out over the final release period.
func NewFade(s beep.Streamer, duration, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	rel := rate.N(release)
	if rel > total {
		rel = total
	}
	return &fade{streamer: s, total: total, release: rel}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	if remaining := f.total - f.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	if len(samples) == 0 {
		return 0, false
	}

	n, ok = f.streamer.Stream(samples)
	releaseStart := f.total - f.release
	for i := 0; i < n; i++ {
		if f.position >= releaseStart && f.release > 0 {
			vol := float64(f.total-f.position) / float64(f.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// newVolume wraps s with a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// DeathSound is a falling tone starting at freq and ending an octave lower.
func DeathSound(freq, vol float64, rate beep.SampleRate) beep.Streamer {
	tone := NewSweep(freq, freq/2, DeathDuration, rate)
	return newVolume(NewFade(tone, DeathDuration, DeathDuration/2, rate), vol)
}

// ResetSound is a short blip at freq.
func ResetSound(freq, vol float64, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequency above Nyquist, fall back to a sweep which aliases harmlessly
		tone = NewSweep(freq, freq, ResetDuration, rate)
	}
	return newVolume(NewFade(tone, ResetDuration, fadeOut, rate), vol)
}
