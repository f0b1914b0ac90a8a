package anakin

import "errors"

// Error kinds returned by this package. All failures are synchronous and
// unrecoverable at the call site: degenerate configurations require the caller
// to pick another representation or reference, not a retry.
var (
	// ErrInvalidArguments indicates a construction call with an unsupported
	// arity or argument shape.
	ErrInvalidArguments = errors.New("anakin: invalid arguments")

	// ErrDegenerateRepresentation indicates an axis/angle, quaternion or Euler
	// extraction at a configuration where that representation is undefined
	// (0 or 180 degree rotations, degenerate middle Euler angles).
	ErrDegenerateRepresentation = errors.New("anakin: degenerate representation")

	// ErrShapeMismatch indicates a value whose rank or dimensions do not
	// reduce to what the receiver requires (scalar mass, 3x3 inertia, 3x3
	// basis matrix).
	ErrShapeMismatch = errors.New("anakin: shape mismatch")

	// ErrUnsupportedOperation indicates an operation which needs symbolic
	// time-dependent state but was invoked without it.
	ErrUnsupportedOperation = errors.New("anakin: unsupported operation")
)
