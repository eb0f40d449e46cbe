package cli

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-stretch/internal/wavio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBenchCommand(a *app) *cobra.Command {
	var (
		opts  engineOptions
		input string
		runs  int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated stretches of a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.applyDefaults(cmd, a.cfg)

			if runs < 1 {
				return fmt.Errorf("runs must be >= 1: %d", runs)
			}

			src, err := wavio.ReadFile(input)
			if err != nil {
				return err
			}

			s, err := opts.newSession(len(src.Channels), float64(src.SampleRate), a.logger)
			if err != nil {
				return err
			}

			var total, best time.Duration

			for run := range runs {
				start := time.Now()

				_, err = s.Process(src.Channels)
				if err != nil {
					return err
				}

				elapsed := time.Since(start)
				total += elapsed

				if run == 0 || elapsed < best {
					best = elapsed
				}

				a.logger.Debug("bench run", zap.Int("run", run), zap.Duration("elapsed", elapsed))
			}

			mean := total / time.Duration(runs)
			audioDuration := time.Duration(float64(src.Frames()) / float64(src.SampleRate) * float64(time.Second))

			speed := 0.0
			if mean > 0 {
				speed = audioDuration.Seconds() / mean.Seconds()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "runs %d  mean %v  best %v  %.1fx realtime\n",
				runs, mean, best, speed)

			return nil
		},
	}

	opts.register(cmd)

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input WAV file")
	f.IntVarP(&runs, "runs", "n", 5, "number of timed runs")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
