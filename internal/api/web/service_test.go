package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smsgate/console/internal/auth"
	"github.com/smsgate/console/internal/config"
	"github.com/smsgate/console/internal/message"
)

const testPassword = "opensesame"

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

// fakeGateway is an in-memory message gateway recording every call it receives
type fakeGateway struct {
	mu sync.Mutex

	messages []message.Message
	listErr  error
	sendErr  error

	listCalls int
	sent      []sentMessage
}

type sentMessage struct {
	from, to, body string
}

func (gateway *fakeGateway) List(_ context.Context) ([]message.Message, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.listCalls++
	if gateway.listErr != nil {
		return nil, gateway.listErr
	}
	return gateway.messages, nil
}

func (gateway *fakeGateway) Send(_ context.Context, from, to, body string) (string, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	if gateway.sendErr != nil {
		return "", gateway.sendErr
	}
	gateway.sent = append(gateway.sent, sentMessage{from: from, to: to, body: body})
	return uuid.NewString(), nil
}

func newTestService(t *testing.T, gateway message.Gateway) (*Service, http.Handler) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	service := &Service{
		Config: &config.Config{
			WebBaseAddress:       "http://localhost:8000",
			WebAllowedOrigin:     "*",
			OperatorPasswordHash: string(hash),
		},
		Gateway: gateway,
		Tokens:  auth.NewTokenService(testSigningKey, time.Hour),
	}
	handler, err := service.buildHandler()
	require.NoError(t, err)
	return service, handler
}

func sessionCookie(t *testing.T, service *Service) *http.Cookie {
	t.Helper()
	token, err := service.Tokens.Issue()
	require.NoError(t, err)
	return &http.Cookie{Name: cookieNameAccessToken, Value: token}
}

func postForm(handler http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func get(handler http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestEndpointHealth(t *testing.T) {
	t.Parallel()

	_, handler := newTestService(t, &fakeGateway{})

	response := get(handler, "/health")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message": "ok"}`, response.Body.String())

	request := httptest.NewRequest(http.MethodHead, "/health", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestEndpointLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	_, handler := newTestService(t, &fakeGateway{})

	response := postForm(handler, "/login", url.Values{"password": {"letmein"}})
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	assert.Empty(t, response.Result().Cookies())
}

func TestEndpointLogin_Success(t *testing.T) {
	t.Parallel()

	service, handler := newTestService(t, &fakeGateway{
		messages: []message.Message{
			{From: "+1000", To: "+2000", DateSent: time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC), Body: "hello there", NumMedia: 1},
		},
	})

	response := postForm(handler, "/login", url.Values{"password": {testPassword}})
	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/messages", response.Header().Get("Location"))

	cookies := response.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, cookieNameAccessToken, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Zero(t, cookie.MaxAge)

	// The issued cookie has to carry a decodable session token
	_, err := service.Tokens.Decode(cookie.Value)
	require.NoError(t, err)

	// The cookie authorizes the message listing
	listing := get(handler, "/messages", cookie)
	assert.Equal(t, http.StatusOK, listing.Code)
	assert.Contains(t, listing.Body.String(), "hello there")
	assert.Contains(t, listing.Body.String(), "+2000")
}

func TestEndpointMessages_NoSession(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	_, handler := newTestService(t, gateway)

	response := get(handler, "/messages")
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))

	// The gateway must not be touched without a valid session
	assert.Zero(t, gateway.listCalls)
}

func TestEndpointMessages_ExpiredSession(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	_, handler := newTestService(t, gateway)

	expired, err := auth.NewTokenService(testSigningKey, -time.Minute).Issue()
	require.NoError(t, err)

	response := get(handler, "/messages", &http.Cookie{Name: cookieNameAccessToken, Value: expired})
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	assert.Zero(t, gateway.listCalls)
}

func TestEndpointMessages_EmptyListing(t *testing.T) {
	t.Parallel()

	service, handler := newTestService(t, &fakeGateway{})

	response := get(handler, "/messages", sessionCookie(t, service))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "No messages yet")
}

func TestEndpointMessages_ListingFailure(t *testing.T) {
	t.Parallel()

	service, handler := newTestService(t, &fakeGateway{listErr: message.ErrUnavailable})

	// A provider outage degrades the page, it does not fail the request
	response := get(handler, "/messages", sessionCookie(t, service))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "could not be reached")
}

func TestEndpointMessagesJSON(t *testing.T) {
	t.Parallel()

	service, handler := newTestService(t, &fakeGateway{
		messages: []message.Message{
			{From: "+1000", To: "+2000", DateSent: time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC), Body: "hi", NumMedia: 0},
		},
	})

	response := get(handler, "/messages-json", sessionCookie(t, service))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message": [
		{"from": "+1000", "to": "+2000", "date_sent": "Tue, 10 Mar 2026 14:00:00 +0000", "body": "hi", "num_media": 0}
	]}`, response.Body.String())
}

func TestEndpointMessagesJSON_Empty(t *testing.T) {
	t.Parallel()

	service, handler := newTestService(t, &fakeGateway{})

	response := get(handler, "/messages-json", sessionCookie(t, service))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message": "No messages"}`, response.Body.String())
}

func TestEndpointMessagesJSON_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	service, handler := newTestService(t, &fakeGateway{listErr: message.ErrUnavailable})

	response := get(handler, "/messages-json", sessionCookie(t, service))
	assert.Equal(t, http.StatusBadGateway, response.Code)
	assert.Contains(t, response.Body.String(), "message.provider.unavailable")
}

func TestEndpointSendMessage(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	service, handler := newTestService(t, gateway)

	response := postForm(handler, "/message", url.Values{
		"from_": {"+1000"},
		"to":    {"+2000"},
		"body":  {"hi"},
	}, sessionCookie(t, service))

	assert.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/messages", response.Header().Get("Location"))

	// The form values have to reach the gateway untouched
	require.Len(t, gateway.sent, 1)
	assert.Equal(t, sentMessage{from: "+1000", to: "+2000", body: "hi"}, gateway.sent[0])
}

func TestEndpointSendMessage_NoSession(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	_, handler := newTestService(t, gateway)

	response := postForm(handler, "/message", url.Values{"from_": {"+1000"}, "to": {"+2000"}, "body": {"hi"}})
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/login", response.Header().Get("Location"))
	assert.Empty(t, gateway.sent)
}

func TestEndpointSendMessage_Failure(t *testing.T) {
	t.Parallel()

	for name, testCase := range map[string]struct {
		sendErr error
		status  int
	}{
		"rejected":    {sendErr: message.ErrProviderRejected, status: http.StatusUnprocessableEntity},
		"unavailable": {sendErr: message.ErrUnavailable, status: http.StatusBadGateway},
	} {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			service, handler := newTestService(t, &fakeGateway{sendErr: testCase.sendErr})

			response := postForm(handler, "/message", url.Values{
				"from_": {"+1000"},
				"to":    {"+2000"},
				"body":  {"hi"},
			}, sessionCookie(t, service))

			// A failed send must never masquerade as a redirect to the listing
			assert.Equal(t, testCase.status, response.Code)
			assert.Contains(t, response.Body.String(), "Message not sent")
		})
	}
}

func TestEndpointLoginForm(t *testing.T) {
	t.Parallel()

	_, handler := newTestService(t, &fakeGateway{})

	response := get(handler, "/login")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `name="password"`)
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	_, handler := newTestService(t, &fakeGateway{})

	response := get(handler, "/nope")
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), "generic.notFound")
}

func TestFormatCountdown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1:00:00", formatCountdown(time.Hour))
	assert.Equal(t, "0:59:59", formatCountdown(time.Hour-time.Second))
	assert.Equal(t, "0:00:00", formatCountdown(0))
	assert.Equal(t, "2:05:07", formatCountdown(2*time.Hour+5*time.Minute+7*time.Second+300*time.Millisecond))
}
