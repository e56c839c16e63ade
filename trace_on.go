//go:build debug

// only build tag debug is set, then debugLog is compiled in
package ringvec

func (v *RingVector[T]) debugLog(format string, args ...any) {
	args = append([]any{v.start, v.size, len(v.buf)}, args...)
	log.Debugf("[start=%d size=%d cap=%d] "+format, args...)
}
