package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-stretch/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithChannels(2),
		core.WithSampleRate(48000),
		core.WithBlockSize(4096),
		core.WithIntervalSize(1024),
	)

	fmt.Printf("channels=%d sampleRate=%.0f block=%d interval=%d\n",
		cfg.Channels, cfg.SampleRate, cfg.BlockSize, cfg.IntervalSize)

	// Output:
	// channels=2 sampleRate=48000 block=4096 interval=1024
}

func ExampleShiftIn() {
	hist := []float64{1, 2, 3, 4}
	core.ShiftIn(hist, []float64{5, 6})
	fmt.Println(hist)

	core.ShiftInZeros(hist, 3)
	fmt.Println(hist)

	// Output:
	// [3 4 5 6]
	// [6 0 0 0]
}
