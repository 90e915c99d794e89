package response

import "net/http"

// HTTPError is an error rendered as a structured JSON body.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with the cause recorded in details.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

func newStatusError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

var (
	ErrBadRequest            = newStatusError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized          = newStatusError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden             = newStatusError(http.StatusForbidden, "forbidden")
	ErrNotFound              = newStatusError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = newStatusError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict              = newStatusError(http.StatusConflict, "conflict")
	ErrRequestEntityTooLarge = newStatusError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType  = newStatusError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity   = newStatusError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests       = newStatusError(http.StatusTooManyRequests, "too_many_requests")

	ErrInternalServerError = newStatusError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable  = newStatusError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout      = newStatusError(http.StatusGatewayTimeout, "gateway_timeout")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrRequestEntityTooLarge,
	http.StatusUnsupportedMediaType:  ErrUnsupportedMediaType,
	http.StatusUnprocessableEntity:   ErrUnprocessableEntity,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
	http.StatusGatewayTimeout:        ErrGatewayTimeout,
}
