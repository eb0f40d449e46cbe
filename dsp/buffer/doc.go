// Package buffer provides a multichannel float64 sample buffer with a movable
// cursor offset, and a pool for reusing such buffers between calls.
//
// A Buffer keeps all channels in one contiguous allocation. Indexed access
// through At, Set, Add and Ref is relative to the buffer-wide offset, so the
// same storage can be handed to a processor at different logical start points
// without copying. The buffer never checks the logical window; callers own the
// offset arithmetic.
package buffer
