package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
		if total > 10*44100 {
			t.Fatal("stream did not terminate")
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate, rand.New(rand.NewSource(1)))

	total, peak := drain(t, osc)
	if total != rate.N(100*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(100*time.Millisecond), total)
	}
	if peak > 1.0 {
		t.Errorf("Sine peak out of range: %f", peak)
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

func TestOscillatorNoiseRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(0, 50*time.Millisecond, WaveNoise, rate, rand.New(rand.NewSource(2)))

	samples := make([][2]float64, 200)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Fatalf("Noise sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Fatalf("Noise sample %d should be mono", i)
		}
	}
}

func TestEnvelopeFades(t *testing.T) {
	rate := beep.SampleRate(1000)
	// Constant input makes the envelope shape visible.
	env := NewEnvelope(constStreamer{}, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	samples := make([][2]float64, 1000)
	n, _ := env.Stream(samples)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Attack should start silent, got %f", samples[0][0])
	}
	if samples[500][0] != 1 {
		t.Errorf("Sustain should be full volume, got %f", samples[500][0])
	}
	if samples[999][0] >= 0.05 {
		t.Errorf("Release should end near silence, got %f", samples[999][0])
	}
}

func TestCrashCueTerminates(t *testing.T) {
	rate := beep.SampleRate(44100)
	total, peak := drain(t, CrashCue(rate, 0.5, rand.New(rand.NewSource(4))))
	if total == 0 || total > rate.N(crashDuration) {
		t.Errorf("Crash cue length = %d samples, want (0, %d]", total, rate.N(crashDuration))
	}
	if peak == 0 {
		t.Error("Crash cue should not be silent")
	}
}

func TestCrashCueZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, CrashCue(beep.SampleRate(8000), 0, rand.New(rand.NewSource(5))))
	if peak != 0 {
		t.Errorf("Zero-volume cue peak = %f, want 0", peak)
	}
}

func TestMutedPlayerIsNoop(t *testing.T) {
	p := NewPlayer(1, true, nil)
	if err := p.Init(); err != nil {
		t.Fatalf("Init() on a muted player failed: %v", err)
	}
	p.Collision()
	p.Close()
	if p.initialized {
		t.Error("Muted player should never open the speaker")
	}
}

type constStreamer struct{}

func (constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constStreamer) Err() error { return nil }
