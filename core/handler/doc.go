// Package handler defines the function types shared by HTTP endpoints.
//
// An endpoint is a Func that inspects the request and returns a Response.
// Rendering is deferred so the Func stays free of http.ResponseWriter and
// errors flow to a single ErrorHandler:
//
//	func send(r *http.Request) handler.Response {
//		var in Input
//		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
//			return response.Error(response.ErrBadRequest.WithError(err))
//		}
//		return response.JSONWithStatus(out, http.StatusCreated)
//	}
//
//	r.Post("/send", response.Handler(send))
package handler
