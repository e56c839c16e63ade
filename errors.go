package ringvec

import "github.com/pkg/errors"

var (
	// ErrInvalidContainer is returned when the receiver is nil or its
	// start/size/capacity bookkeeping is inconsistent.
	ErrInvalidContainer = errors.New("invalid container")
	// ErrInvalidArgument covers out-of-range indices, bad lengths and
	// missing callbacks.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCapacityOverflow means the requested capacity cannot be expressed
	// in bytes on this platform.
	ErrCapacityOverflow = errors.New("capacity overflow")
	// ErrAllocationFailure means the allocator refused every size tried.
	ErrAllocationFailure = errors.New("allocation failure")
)
