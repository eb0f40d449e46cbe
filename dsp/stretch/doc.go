// Package stretch drives a block-based time-stretch / pitch-shift Engine
// over finite multichannel buffers and compensates for the engine's
// latency.
//
// A Session pads the input with InputLatency samples of trailing silence,
// primes the engine with Seek, runs Process over the real input with the
// cursor moved past the priming region, then Flushes the engine's pending
// output into a tail region and trims the result. With exact length enabled
// a call on L samples returns exactly round(L*timeFactor) samples per
// channel, aligned with the undelayed input. Without it the flushed tail
// (OutputLatency+InputLatency samples) is kept.
//
// Sessions and engines are not safe for concurrent use.
package stretch
