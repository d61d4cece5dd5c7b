package catalog

import "errors"

var (
	ErrUnavailable = errors.New("catalog unavailable")
)
