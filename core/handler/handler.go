package handler

import "net/http"

// Response renders an HTTP response: headers, status code and body.
// A returned error is passed to the ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

// Func builds the response for a request.
type Func func(r *http.Request) Response

// ErrorHandler renders an error returned by a Func or its Response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
