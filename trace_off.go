//go:build !debug

// if build tag debug is not set, then debugLog is compiled out
package ringvec

func (v *RingVector[T]) debugLog(format string, args ...any) {}
