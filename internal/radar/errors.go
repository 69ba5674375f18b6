package radar

import "errors"

var (
	ErrNoCategories       = errors.New("radar needs at least one category")
	ErrTooFewSubdivisions = errors.New("radar needs at least two gridline levels")
	ErrRangeCount         = errors.New("one range per category is required")
	ErrDegenerateRange    = errors.New("range min and max must differ")
	ErrValueCount         = errors.New("one value per category is required")
	ErrInvalidValue       = errors.New("value is not a finite number")
	ErrInvalidOpacity     = errors.New("opacity must be within [0, 1]")
)
