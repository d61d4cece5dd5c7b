package http

import (
	"errors"
	"net/http"

	"casebem/internal/model"
	pkgErrors "casebem/pkg/errors"
)

var statusByKind = map[model.ErrorKind]int{
	model.KindInvalidInput:   http.StatusBadRequest,
	model.KindInvalidLine:    http.StatusBadRequest,
	model.KindForbidden:      http.StatusForbidden,
	model.KindNotFound:       http.StatusNotFound,
	model.KindDemandNotOpen:  http.StatusConflict,
	model.KindDuplicateQuote: http.StatusConflict,
	model.KindAlreadyDecided: http.StatusConflict,
	model.KindFrozen:         http.StatusConflict,
	model.KindStorage:        http.StatusServiceUnavailable,
}

type lineDetails struct {
	Line int `json:"line"`
}

// MapError translates a domain error into an HTTP error. The kind travels in
// the envelope, the offending quote line in its details.
func MapError(err error) error {
	var de *model.Error
	if !errors.As(err, &de) {
		return pkgErrors.ErrInternalServerError
	}
	status, ok := statusByKind[de.Kind]
	if !ok {
		return pkgErrors.ErrInternalServerError
	}

	httpErr := pkgErrors.NewHTTPError(status, de.Error()).WithCode(string(de.Kind))
	if de.Line > 0 {
		httpErr = httpErr.WithDetails(lineDetails{Line: de.Line})
	}
	return httpErr
}

func (h *handler) mapError(err error) error {
	return MapError(err)
}
