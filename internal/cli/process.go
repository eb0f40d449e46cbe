package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/internal/wavio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newProcessCommand(a *app) *cobra.Command {
	var (
		opts     engineOptions
		input    string
		output   string
		bitDepth int
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Stretch a WAV file",
		Example: `  stretch process -i voice.wav -o slow.wav -t 1.5 --exact
  stretch process -i voice.wav -o up.wav --semitones 3 --tonality-limit 8000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.applyDefaults(cmd, a.cfg)
			if !cmd.Flags().Changed("bit-depth") {
				bitDepth = a.cfg.BitDepth
			}

			src, err := wavio.ReadFile(input)
			if err != nil {
				return err
			}

			if src.SampleRate <= 0 {
				return errors.New("input has no sample rate")
			}

			s, err := opts.newSession(len(src.Channels), float64(src.SampleRate), a.logger)
			if err != nil {
				return err
			}

			start := time.Now()

			out, err := s.Process(src.Channels)
			if err != nil {
				return err
			}

			elapsed := time.Since(start)

			err = wavio.WriteFile(output, out, src.SampleRate, bitDepth)
			if err != nil {
				return err
			}

			frames := 0
			peak := 0.0

			for c, ch := range out {
				if c == 0 {
					frames = len(ch)
				}

				peak = max(peak, core.PeakAbs(ch))
			}

			a.logger.Info("stretched",
				zap.String("input", input),
				zap.String("output", output),
				zap.Int("input_frames", src.Frames()),
				zap.Int("output_frames", frames),
				zap.Float64("time_factor", s.TimeFactor()),
				zap.Float64("peak_dbfs", core.LinearToDB(peak)),
				zap.Duration("elapsed", elapsed),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d channels, %d Hz\n",
				output, frames, len(out), src.SampleRate)

			return nil
		},
	}

	opts.register(cmd)

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input WAV file")
	f.StringVarP(&output, "output", "o", "", "output WAV file")
	f.IntVar(&bitDepth, "bit-depth", 16, "output bit depth: 16, 24 or 32 (env STRETCH_BIT_DEPTH)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
