package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/smsgate/console/internal/auth"
)

// cookieNameAccessToken is the cookie the session token travels in.
// The server sets no Max-Age; the embedded expiry claim is the only lifetime the token has.
var cookieNameAccessToken = "access_token"

var contextValueSession = "session"

// authenticate resolves the session of a request.
// It returns the decoded session claims and true on success, or false when the
// request has to be redirected to the login page (missing cookie or an invalid
// or expired token - the two cases are indistinguishable on purpose).
func (service *Service) authenticate(request *http.Request) (*auth.SessionClaims, bool) {
	cookie, err := request.Cookie(cookieNameAccessToken)
	if err != nil {
		return nil, false
	}
	claims, err := service.Tokens.Decode(cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// MiddlewareVerifySession makes sure that the requesting client holds a valid session token.
// Requests without one are redirected to the login page instead of receiving an error status.
// On success, it injects the decoded session claims into the request context.
func (service *Service) MiddlewareVerifySession(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		claims, ok := service.authenticate(request)
		if !ok {
			http.Redirect(writer, request, "/login", http.StatusFound)
			return
		}

		// Delegate to the next handler
		request = request.WithContext(context.WithValue(request.Context(), contextValueSession, claims))
		next(writer, request)
	}
}

// sessionClaims extracts the session claims injected by MiddlewareVerifySession out of the request context
func sessionClaims(request *http.Request) (*auth.SessionClaims, error) {
	claims, ok := request.Context().Value(contextValueSession).(*auth.SessionClaims)
	if !ok {
		return nil, errors.New("protected endpoint called without session verification")
	}
	return claims, nil
}
