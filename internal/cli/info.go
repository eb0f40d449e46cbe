package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInfoCommand(a *app) *cobra.Command {
	var (
		opts       engineOptions
		sampleRate float64
		channels   int
		frames     int
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print block, interval and latency figures for a configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.applyDefaults(cmd, a.cfg)
			if !cmd.Flags().Changed("sample-rate") {
				sampleRate = a.cfg.SampleRate
			}

			if frames < 0 {
				frames = int(sampleRate)
			}

			s, err := opts.newSession(channels, sampleRate, a.logger)
			if err != nil {
				return err
			}

			ms := func(samples int) float64 { return 1000 * float64(samples) / sampleRate }

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "sample rate\t%g Hz\n", sampleRate)
			fmt.Fprintf(w, "channels\t%d\n", s.Channels())
			fmt.Fprintf(w, "block\t%d\t%.2f ms\n", s.BlockSamples(), ms(s.BlockSamples()))
			fmt.Fprintf(w, "interval\t%d\t%.2f ms\n", s.IntervalSamples(), ms(s.IntervalSamples()))
			fmt.Fprintf(w, "input latency\t%d\t%.2f ms\n", s.InputLatency(), ms(s.InputLatency()))
			fmt.Fprintf(w, "output latency\t%d\t%.2f ms\n", s.OutputLatency(), ms(s.OutputLatency()))
			fmt.Fprintf(w, "time factor\t%g\n", s.TimeFactor())
			fmt.Fprintf(w, "exact length\t%t\n", s.ExactLength())
			fmt.Fprintf(w, "result length\t%d\tfor %d input frames\n", s.ResultLength(frames), frames)

			return w.Flush()
		},
	}

	opts.register(cmd)

	f := cmd.Flags()
	f.Float64Var(&sampleRate, "sample-rate", 44100, "sample rate in Hz (env STRETCH_SAMPLE_RATE)")
	f.IntVar(&channels, "channels", 1, "channel count (1 or 2)")
	f.IntVar(&frames, "frames", -1, "input length used for the result length (default one second)")

	return cmd
}
