package enhancer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when an argument is out of range or malformed.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidImage is returned for images of unsupported shape or undecodable data.
	ErrInvalidImage = errors.New("invalid image")
)

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func invalidImage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidImage, fmt.Sprintf(format, args...))
}
