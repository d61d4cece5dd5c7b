package http

import negotiationHTTP "casebem/internal/negotiation/delivery/http"

func (h *handler) mapError(err error) error {
	return negotiationHTTP.MapError(err)
}
