// Package twilio implements the message gateway against the Twilio REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smsgate/console/internal/message"
)

const apiVersion = "2010-04-01"

// dateSentLayout is the timestamp format the provider reports message dates in
const dateSentLayout = time.RFC1123Z

// Client implements the message gateway using the provider's REST API.
// It authenticates with an API key/secret pair belonging to this process, not to the operator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	apiKey     string
	apiSecret  string
}

var _ message.Gateway = (*Client)(nil)

// New creates a new provider client for the given account using the given API credentials
func New(baseURL, accountSID, apiKey, apiSecret string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accountSID: accountSID,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}
}

// messagePayload represents a single message as serialized by the provider.
// Numeric fields arrive as strings.
type messagePayload struct {
	SID      string `json:"sid"`
	From     string `json:"from"`
	To       string `json:"to"`
	DateSent string `json:"date_sent"`
	Body     string `json:"body"`
	NumMedia string `json:"num_media"`
}

type listResponsePayload struct {
	Messages []messagePayload `json:"messages"`
}

type errorResponsePayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// List retrieves all messages of the account, preserving the order the provider reports them in
func (client *Client) List(ctx context.Context) ([]message.Message, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.messagesURL(), nil)
	if err != nil {
		return nil, err
	}
	request.SetBasicAuth(client.apiKey, client.apiSecret)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", message.ErrUnavailable, err)
	}
	defer response.Body.Close()
	if err := checkStatus(response); err != nil {
		return nil, err
	}

	payload := new(listResponsePayload)
	if err := json.NewDecoder(response.Body).Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: malformed list response: %v", message.ErrUnavailable, err)
	}

	messages := make([]message.Message, 0, len(payload.Messages))
	for _, raw := range payload.Messages {
		messages = append(messages, raw.toMessage())
	}
	return messages, nil
}

// Send submits a new message and returns the provider-assigned message SID.
// The given values are forwarded verbatim; format rejections surface as ErrProviderRejected.
func (client *Client) Send(ctx context.Context, from, to, body string) (string, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.messagesURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	request.SetBasicAuth(client.apiKey, client.apiSecret)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", message.ErrUnavailable, err)
	}
	defer response.Body.Close()
	if err := checkStatus(response); err != nil {
		return "", err
	}

	payload := new(messagePayload)
	if err := json.NewDecoder(response.Body).Decode(payload); err != nil {
		return "", fmt.Errorf("%w: malformed send response: %v", message.ErrUnavailable, err)
	}
	return payload.SID, nil
}

func (client *Client) messagesURL() string {
	return fmt.Sprintf("%s/%s/Accounts/%s/Messages.json", client.baseURL, apiVersion, client.accountSID)
}

// checkStatus maps non-2xx provider responses onto the gateway error taxonomy.
// Credential and server-side failures count as unavailability; everything else
// is an active rejection of the request.
func checkStatus(response *http.Response) error {
	switch {
	case response.StatusCode < 300:
		return nil
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden || response.StatusCode >= 500:
		return fmt.Errorf("%w: provider responded with status %d", message.ErrUnavailable, response.StatusCode)
	default:
		payload := new(errorResponsePayload)
		_ = json.NewDecoder(response.Body).Decode(payload)
		if payload.Message != "" {
			return fmt.Errorf("%w: %s (code %d)", message.ErrProviderRejected, payload.Message, payload.Code)
		}
		return fmt.Errorf("%w: provider responded with status %d", message.ErrProviderRejected, response.StatusCode)
	}
}

func (payload *messagePayload) toMessage() message.Message {
	// A missing or unparseable date is kept as the zero instant rather than failing the whole listing
	dateSent, _ := time.Parse(dateSentLayout, payload.DateSent)
	numMedia, _ := strconv.Atoi(payload.NumMedia)

	return message.Message{
		From:     payload.From,
		To:       payload.To,
		DateSent: dateSent,
		Body:     payload.Body,
		NumMedia: numMedia,
	}
}
