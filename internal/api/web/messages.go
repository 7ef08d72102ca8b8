package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/smsgate/console/internal/api/schema"
	"github.com/smsgate/console/internal/message"
)

// dateDisplayLayout is the timestamp format message dates are rendered and serialized with
const dateDisplayLayout = time.RFC1123Z

// messagePayload represents a single message on the JSON listing endpoint
type messagePayload struct {
	From     string `json:"from"`
	To       string `json:"to"`
	DateSent string `json:"date_sent"`
	Body     string `json:"body"`
	NumMedia int    `json:"num_media"`
}

// EndpointMessages handles the 'GET /messages' endpoint.
// It renders the session countdown, the send form and the message table.
// A listing failure degrades to an error banner instead of failing the request.
func (service *Service) EndpointMessages(writer http.ResponseWriter, request *http.Request) {
	claims, err := sessionClaims(request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	data := &messagesPageData{
		SessionRemaining: formatCountdown(claims.Remaining(time.Now())),
	}

	messages, err := service.Gateway.List(request.Context())
	if err != nil {
		hlog.FromRequest(request).Error().Err(err).Msg("could not list messages")
		data.ListingFailed = true
	}
	for _, msg := range messages {
		data.Messages = append(data.Messages, messageRow{
			From:     msg.From,
			To:       msg.To,
			SentAt:   formatDateSent(msg.DateSent),
			Body:     msg.Body,
			NumMedia: msg.NumMedia,
		})
	}

	service.renderPage(writer, request, service.templates.messages, http.StatusOK, data)
}

// EndpointMessagesJSON handles the 'GET /messages-json' endpoint
func (service *Service) EndpointMessagesJSON(writer http.ResponseWriter, request *http.Request) {
	messages, err := service.Gateway.List(request.Context())
	if err != nil {
		hlog.FromRequest(request).Error().Err(err).Msg("could not list messages")
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrProviderUnavailable)
		return
	}

	// An empty listing is an explicit state of its own, not an error
	if len(messages) == 0 {
		service.writer.WriteJSON(writer, map[string]interface{}{"message": "No messages"})
		return
	}

	payload := make([]messagePayload, 0, len(messages))
	for _, msg := range messages {
		payload = append(payload, messagePayload{
			From:     msg.From,
			To:       msg.To,
			DateSent: formatDateSent(msg.DateSent),
			Body:     msg.Body,
			NumMedia: msg.NumMedia,
		})
	}
	service.writer.WriteJSON(writer, map[string]interface{}{"message": payload})
}

// EndpointSendMessage handles the 'POST /message' endpoint.
// The form values are handed to the gateway verbatim; whether they constitute
// valid phone numbers or an acceptable body is the provider's call.
func (service *Service) EndpointSendMessage(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrBadForm)
		return
	}

	from := request.PostFormValue("from_")
	to := request.PostFormValue("to")
	body := request.PostFormValue("body")

	if _, err := service.Gateway.Send(request.Context(), from, to, body); err != nil {
		hlog.FromRequest(request).Error().Err(err).Msg("could not send message")

		// A failed send must never look like a success; render the failure with an upstream error status
		status := http.StatusBadGateway
		if errors.Is(err, message.ErrProviderRejected) {
			status = http.StatusUnprocessableEntity
		}
		service.renderPage(writer, request, service.templates.sendFailed, status, &sendFailedPageData{
			Rejected: errors.Is(err, message.ErrProviderRejected),
		})
		return
	}

	http.Redirect(writer, request, "/messages", http.StatusSeeOther)
}

// formatCountdown renders the remaining session lifetime as whole hours, minutes and seconds
func formatCountdown(remaining time.Duration) string {
	remaining = remaining.Truncate(time.Second)
	hours := remaining / time.Hour
	minutes := (remaining % time.Hour) / time.Minute
	seconds := (remaining % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

// formatDateSent renders a message timestamp, keeping an explicit placeholder for dates the provider did not report
func formatDateSent(dateSent time.Time) string {
	if dateSent.IsZero() {
		return "unknown"
	}
	return dateSent.Format(dateDisplayLayout)
}
