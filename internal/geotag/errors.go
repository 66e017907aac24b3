package geotag

import "errors"

var (
	ErrNoMetadata      = errors.New("no EXIF metadata")
	ErrNoGPS           = errors.New("no GPS information")
	ErrIncompleteGPS   = errors.New("incomplete GPS information")
	ErrZeroDenominator = errors.New("rational with zero denominator")
	ErrComponentCount  = errors.New("coordinate must have 3 components")
)
