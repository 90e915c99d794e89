package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailpush/core/handler"
)

type statusCoder interface {
	StatusCode() int
}

// Error returns a response that fails with err, leaving rendering to the ErrorHandler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// ToHTTPError converts any error to an HTTPError. HTTPError values pass
// through; errors with a StatusCode method map to the matching predefined
// error; everything else becomes a 500 with the cause attached.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// JSONErrorHandler renders err as an HTTPError JSON body.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := ToHTTPError(err)
	if renderErr := JSONWithStatus(httpErr, httpErr.Status)(w, r); renderErr != nil {
		http.Error(w, httpErr.Message, httpErr.Status)
	}
}

// Handler adapts fn to http.HandlerFunc. Errors are rendered by
// JSONErrorHandler unless another handler is given.
func Handler(fn handler.Func, onError ...handler.ErrorHandler) http.HandlerFunc {
	errHandler := handler.ErrorHandler(JSONErrorHandler)
	if len(onError) > 0 && onError[0] != nil {
		errHandler = onError[0]
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := resp(w, r); err != nil {
			errHandler(w, r, err)
		}
	}
}
