package health

import (
	"net/http"

	"github.com/dmitrymomot/mailpush/core/handler"
	"github.com/dmitrymomot/mailpush/core/response"
)

// Liveness reports that the process is running. Always "ALIVE" with 200 OK.
func Liveness(*http.Request) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns 204 without a body.
func NoContent(*http.Request) handler.Response {
	return response.NoContent()
}
