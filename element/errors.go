package element

import "errors"

var (
	// ErrInvalidParameter is returned when a physical parameter is non-finite
	// or outside its admissible range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidConnectivity is returned when the node list does not match
	// the arity of the element.
	ErrInvalidConnectivity = errors.New("invalid connectivity")
)
