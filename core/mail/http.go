package mail

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailpush/core/handler"
	"github.com/dmitrymomot/mailpush/core/response"
	"github.com/dmitrymomot/mailpush/middleware"
)

// Routes mounts the submission endpoints. The router must already apply
// middleware.Auth so the sender identity is in the request context.
func Routes(svc *Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/send", response.Handler(svc.handleSend))
		r.Post("/draft", response.Handler(svc.handleDraft))
	}
}

func (s *Service) handleSend(r *http.Request) handler.Response {
	from, d, err := decodeRequest(r)
	if err != nil {
		return response.Error(err)
	}
	sent, err := s.Send(r.Context(), from, d)
	if err != nil {
		return response.Error(httpError(err))
	}
	return response.JSONWithStatus(sent, http.StatusCreated)
}

func (s *Service) handleDraft(r *http.Request) handler.Response {
	from, d, err := decodeRequest(r)
	if err != nil {
		return response.Error(err)
	}
	draft, err := s.SaveDraft(r.Context(), from, d)
	if err != nil {
		return response.Error(httpError(err))
	}
	return response.JSONWithStatus(draft, http.StatusCreated)
}

func decodeRequest(r *http.Request) (string, Draft, error) {
	from, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return "", Draft{}, response.ErrUnauthorized
	}

	var d Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", Draft{}, response.ErrRequestEntityTooLarge
		}
		return "", Draft{}, response.ErrBadRequest.WithMessage("invalid request body").WithError(err)
	}
	return from, d, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRecipient):
		return response.ErrBadRequest.WithMessage("invalid recipient address")
	case errors.Is(err, ErrEmptySender):
		return response.ErrUnauthorized
	default:
		return err
	}
}
