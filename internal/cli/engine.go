package cli

import (
	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/stretch"
	"github.com/cwbudde/algo-stretch/dsp/stretch/vocoder"
	"github.com/cwbudde/algo-stretch/dsp/window"
	"github.com/cwbudde/algo-stretch/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// engineOptions are the stretch parameters shared by every subcommand.
type engineOptions struct {
	timeFactor      float64
	semitones       float64
	transpose       float64
	tonalityLimitHz float64
	cheaper         bool
	exact           bool
	block           int
	interval        int
	window          string
}

func (o *engineOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64VarP(&o.timeFactor, "time-factor", "t", 1, "output duration / input duration (env STRETCH_TIME_FACTOR)")
	f.Float64Var(&o.semitones, "semitones", 0, "pitch shift in semitones")
	f.Float64Var(&o.transpose, "transpose", 1, "pitch multiplier")
	f.Float64Var(&o.tonalityLimitHz, "tonality-limit", 0, "frequency in Hz above which pitch is shifted instead of scaled (0 disables)")
	f.BoolVar(&o.cheaper, "cheaper", false, "use the cheaper preset (env STRETCH_CHEAPER)")
	f.BoolVar(&o.exact, "exact", false, "trim output to round(input*time-factor) samples (env STRETCH_EXACT)")
	f.IntVar(&o.block, "block", 0, "block size in samples, overrides the preset")
	f.IntVar(&o.interval, "interval", 0, "interval in samples (default block/4 with --block)")
	f.StringVar(&o.window, "window", "hann", "analysis window: hann, hamming, blackman, blackman-harris-4t, kaiser, rectangular")

	cmd.MarkFlagsMutuallyExclusive("semitones", "transpose")
}

// applyDefaults fills flags the user did not set from cfg.
func (o *engineOptions) applyDefaults(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()

	if !f.Changed("time-factor") {
		o.timeFactor = cfg.TimeFactor
	}

	if !f.Changed("cheaper") {
		o.cheaper = cfg.Cheaper
	}

	if !f.Changed("exact") {
		o.exact = cfg.Exact
	}
}

func (o *engineOptions) newSession(channels int, sampleRate float64, logger *zap.Logger) (*stretch.Session, error) {
	engine, err := vocoder.New(core.WithChannels(channels), core.WithSampleRate(sampleRate))
	if err != nil {
		return nil, err
	}

	if o.window != "" {
		t, err := window.ParseType(o.window)
		if err != nil {
			return nil, err
		}

		engine.SetWindow(t)
	}

	s := stretch.NewSession(engine, stretch.WithLogger(logger), stretch.WithExactLength(o.exact))

	err = s.SetTimeFactor(o.timeFactor)
	if err != nil {
		return nil, err
	}

	if o.block > 0 {
		interval := o.interval
		if interval == 0 {
			interval = max(o.block/4, 1)
		}

		err = s.Configure(channels, o.block, interval)
	} else {
		err = s.Preset(channels, sampleRate, o.cheaper, o.exact)
	}

	if err != nil {
		return nil, err
	}

	limit := o.tonalityLimitHz / sampleRate

	switch {
	case o.semitones != 0:
		s.SetTransposeSemitones(o.semitones, limit)
	case o.transpose != 1:
		s.SetTransposeFactor(o.transpose, limit)
	}

	return s, nil
}
