package web

import (
	"net/http"

	"github.com/smsgate/console/internal/auth"
)

// EndpointLoginForm handles the 'GET /login' endpoint
func (service *Service) EndpointLoginForm(writer http.ResponseWriter, request *http.Request) {
	service.renderPage(writer, request, service.templates.login, http.StatusOK, nil)
}

// EndpointLogin handles the 'POST /login' endpoint.
// A correct password yields a fresh session token in the access token cookie and a redirect
// to the message listing; a wrong one redirects back to the login form without a cookie.
func (service *Service) EndpointLogin(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Redirect(writer, request, "/login", http.StatusFound)
		return
	}

	// Verify the submitted password against the configured hash.
	// The submitted value must never end up in a log line or an error message.
	if !auth.VerifyPassword(request.PostFormValue("password"), service.Config.OperatorPasswordHash) {
		http.Redirect(writer, request, "/login", http.StatusFound)
		return
	}

	// Issue a fresh session token
	token, err := service.Tokens.Issue()
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	// Set the session cookie. No Max-Age is set; the expiry claim embedded in
	// the token itself bounds the session.
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameAccessToken,
		Value:    token,
		Path:     "/",
		Secure:   service.Config.IsWebSecure(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(writer, request, "/messages", http.StatusSeeOther)
}
