// Package response builds handler.Response values and renders errors as
// JSON.
//
//	r.Post("/api/mail/send", response.Handler(func(r *http.Request) handler.Response {
//		m, err := svc.Send(r.Context(), from, draft)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSONWithStatus(m, http.StatusCreated)
//	}))
//
// Errors returned from a Response are converted by ToHTTPError: HTTPError
// values keep their status and code, errors implementing StatusCode() int
// map to the predefined error for that status, anything else is a 500.
//
//	{"code":"bad_request","message":"invalid recipient","details":{"cause":"..."}}
package response
