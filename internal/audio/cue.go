// Package audio synthesises and plays the crash cue through the system
// speaker. Everything is generated in code; there are no sound files.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveNoise
)

const (
	crashDuration = 450 * time.Millisecond
	crashAttack   = 5 * time.Millisecond
	crashRelease  = 380 * time.Millisecond
	thudFreq      = 70.0
)

type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite tone or noise source.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate, rng: rng}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CrashCue is a low thud under a burst of noise.
func CrashCue(rate beep.SampleRate, volume float64, rng *rand.Rand) beep.Streamer {
	thud := NewEnvelope(NewOscillator(thudFreq, crashDuration, WaveSine, rate, rng), crashDuration, crashAttack, crashRelease, rate)
	noise := NewEnvelope(NewOscillator(0, crashDuration/2, WaveNoise, rate, rng), crashDuration/2, crashAttack, crashRelease/2, rate)
	return newVolume(beep.Mix(newVolume(thud, 0.6), newVolume(noise, 0.4)), volume)
}
