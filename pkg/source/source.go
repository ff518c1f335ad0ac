// Package source synthesizes measurement datasets for display. It stands in
// for the acquisition side of the system: a live time-domain trace updated on
// a ticker, plus one-shot snapshots for the static plot types.
package source

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itohio/traceview/pkg/config"
	"github.com/itohio/traceview/pkg/dataset"
	"github.com/rs/zerolog"
)

const defaultBufferSize = 16

// Generator produces datasets. The live trace is pushed through Updates();
// static datasets are pulled via Snapshot().
type Generator struct {
	cfg *config.SourceConfig
	log zerolog.Logger

	updates chan *dataset.Dataset

	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool

	liveID dataset.ID
	start  time.Time
	window []dataset.Sample
}

// New creates a generator. The configuration must outlive the generator.
func New(cfg *config.SourceConfig, log zerolog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		log:    log.With().Str("component", "source").Logger(),
		liveID: uuid.New(),
	}
}

// LiveID returns the identity of the live dataset. Stable across Start/Stop
// cycles so the graph's live slot can be cleared by id.
func (g *Generator) LiveID() dataset.ID {
	return g.liveID
}

// Start begins producing live updates. Returns an error when already running.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return fmt.Errorf("already running")
	}

	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.updates = make(chan *dataset.Dataset, defaultBufferSize)
	g.running = true
	g.start = time.Now()
	g.window = g.window[:0]

	go g.generate(g.ctx, g.updates)

	g.log.Debug().Stringer("id", g.liveID).Msg("started")
	return nil
}

// Stop ends production and closes the updates channel. Safe to call when not
// running.
func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		return
	}
	g.cancel()
	g.running = false
	g.log.Debug().Msg("stopped")
}

// Updates returns the channel carrying live dataset refreshes. The channel is
// replaced on every Start and closed after Stop.
func (g *Generator) Updates() <-chan *dataset.Dataset {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.updates
}

// IsRunning reports whether the generator is producing updates.
func (g *Generator) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}

func (g *Generator) generate(ctx context.Context, out chan<- *dataset.Dataset) {
	defer close(out)

	ticker := time.NewTicker(g.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ds := g.nextLive()
			select {
			case out <- ds:
			case <-ctx.Done():
				return
			default:
				// Consumer is behind, skip this update
			}
		}
	}
}

// nextLive appends one sample to the rolling window and snapshots it as a
// dataset. The returned dataset owns a copy of the window, so the consumer
// can hold it across further updates.
func (g *Generator) nextLive() *dataset.Dataset {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := time.Since(g.start).Seconds()
	g.window = append(g.window, dataset.Sample{X: t, Y: g.signalAt(t)})

	// Trim to the configured history window
	cutoff := t - g.cfg.WindowSeconds
	trim := 0
	for trim < len(g.window) && g.window[trim].X < cutoff {
		trim++
	}
	if trim > 0 {
		g.window = append(g.window[:0], g.window[trim:]...)
	}

	samples := make([]dataset.Sample, len(g.window))
	copy(samples, g.window)

	return &dataset.Dataset{
		ID:      g.liveID,
		Name:    "live",
		Samples: samples,
		Type:    dataset.Time,
		Live:    true,
	}
}

// signalAt evaluates the synthetic signal: two tones plus deterministic
// pseudo-noise, the same trick the hardware simulation used.
func (g *Generator) signalAt(t float64) float64 {
	y := g.cfg.WaveAmplitude * math.Sin(2*math.Pi*g.cfg.WaveFrequency*t)
	y += 0.4 * g.cfg.WaveAmplitude * math.Sin(2*math.Pi*g.cfg.SecondFrequency*t)
	y += (math.Sin(t*997.0) + math.Cos(t*1291.0)) * g.cfg.NoiseLevel * 0.5
	return y
}

// Snapshot produces a one-shot static dataset of the given plot type, built
// from the same synthetic signal the live trace uses.
func (g *Generator) Snapshot(typ dataset.PlotType) *dataset.Dataset {
	n := g.cfg.FFTSize
	samples := make([]dataset.Sample, n)

	switch typ {
	case dataset.FFTAmplitude:
		// Two spectral peaks over a small noise floor
		df := 2 * g.cfg.SecondFrequency / float64(n)
		for i := range samples {
			f := float64(i) * df
			y := peak(f, g.cfg.WaveFrequency, g.cfg.WaveAmplitude) +
				peak(f, g.cfg.SecondFrequency, 0.4*g.cfg.WaveAmplitude) +
				g.cfg.NoiseLevel*math.Abs(math.Sin(f*31.7))
			samples[i] = dataset.Sample{X: f, Y: y}
		}
	case dataset.FFTPhase, dataset.FFTPhaseLinear:
		// A group delay shows as a linear phase ramp, wrapped into (-pi, pi],
		// exactly the shape the unwrapper has to straighten out.
		df := 2 * g.cfg.SecondFrequency / float64(n)
		const delay = 0.35 // seconds
		for i := range samples {
			f := float64(i) * df
			phase := -2 * math.Pi * delay * f
			samples[i] = dataset.Sample{X: f, Y: wrap(phase)}
		}
	case dataset.Osc1, dataset.Osc2:
		// Square-ish channel traces with opposite polarity
		sign := 1.0
		if typ == dataset.Osc2 {
			sign = -1.0
		}
		dt := g.cfg.WindowSeconds / float64(n)
		for i := range samples {
			t := float64(i) * dt
			y := sign * g.cfg.WaveAmplitude * math.Tanh(5*math.Sin(2*math.Pi*g.cfg.WaveFrequency*t))
			samples[i] = dataset.Sample{X: t, Y: y}
		}
	default:
		dt := g.cfg.WindowSeconds / float64(n)
		for i := range samples {
			t := float64(i) * dt
			samples[i] = dataset.Sample{X: t, Y: g.signalAt(t)}
		}
	}

	return &dataset.Dataset{
		ID:      uuid.New(),
		Name:    typ.String(),
		Samples: samples,
		Type:    typ,
	}
}

// peak is a narrow gaussian bump centered on f0.
func peak(f, f0, amp float64) float64 {
	d := f - f0
	return amp * math.Exp(-d*d/0.08)
}

// wrap reduces an angle into (-pi, pi].
func wrap(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
