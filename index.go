package ringvec

// All wraparound arithmetic lives here. Callers above this file deal in
// logical indices only.

// wrapAdd returns (a + b) mod n for 0 <= a < n and 0 <= b <= n without
// computing a + b.
func wrapAdd(a, b, n int) int {
	if b >= n-a {
		return b - (n - a)
	}
	return a + b
}

// wrapSub returns (a - b) mod n for 0 <= a < n and 0 <= b <= n.
func wrapSub(a, b, n int) int {
	if b > a {
		return n - (b - a)
	}
	return a - b
}

// phys maps logical index i to its physical offset in buf.
// Requires len(buf) > 0 and 0 <= i <= len(buf).
func (v *RingVector[T]) phys(i int) int {
	return wrapAdd(v.start, i, len(v.buf))
}

// slot returns the storage cell holding logical index i.
func (v *RingVector[T]) slot(i int) *T {
	return &v.buf[v.phys(i)]
}

// circulated counts the logical elements stored past the physical end of
// buf, at its low end.
func (v *RingVector[T]) circulated() int {
	tail := len(v.buf) - v.start
	if v.size <= tail {
		return 0
	}
	return v.size - tail
}

// move copies the element at logical index from to logical index to.
func (v *RingVector[T]) move(to, from int) {
	*v.slot(to) = *v.slot(from)
}

// zero clears n logical slots starting at i so the buffer does not retain
// references to removed elements.
func (v *RingVector[T]) zero(i, n int) {
	var zero T
	for k := 0; k < n; k++ {
		*v.slot(i + k) = zero
	}
}
