// Package vocoder is a streaming STFT phase-vocoder implementing the
// stretch.Engine contract.
//
// Every IntervalSamples output samples the vocoder analyses the most
// recent BlockSamples of input, re-synthesises the frame with phases
// advanced by the measured instantaneous frequency, and overlap-adds it
// into an output ring. The analysis position advances by however much
// input the caller supplied for that stretch of output, so the ratio of
// input to output sample counts sets the time stretch. Pitch is changed
// by remapping bin frequencies.
//
// The input side lags by BlockSamples/2 and the output side by the
// remainder of the block, so InputLatency+OutputLatency equals
// BlockSamples. Channels are processed independently.
//
// A Vocoder is not safe for concurrent use.
package vocoder
