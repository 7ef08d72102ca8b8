package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// templateSet holds the parsed HTML pages of the web console
type templateSet struct {
	login      *template.Template
	messages   *template.Template
	sendFailed *template.Template
}

// messagesPageData feeds the message listing page
type messagesPageData struct {
	SessionRemaining string
	Messages         []messageRow
	ListingFailed    bool
}

// messageRow represents a single line of the message table
type messageRow struct {
	From     string
	To       string
	SentAt   string
	Body     string
	NumMedia int
}

// sendFailedPageData feeds the failed-send page
type sendFailedPageData struct {
	Rejected bool
}

func parseTemplates() (*templateSet, error) {
	set := new(templateSet)
	for name, target := range map[string]**template.Template{
		"login.html.tmpl":       &set.login,
		"messages.html.tmpl":    &set.messages,
		"send_failed.html.tmpl": &set.sendFailed,
	} {
		parsed, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, err
		}
		*target = parsed
	}
	return set, nil
}

// renderPage executes an HTML template into a buffer first so that a rendering
// failure can still be turned into a proper error response.
func (service *Service) renderPage(writer http.ResponseWriter, _ *http.Request, page *template.Template, status int, data interface{}) {
	buf := new(bytes.Buffer)
	if err := page.Execute(buf, data); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	writer.Write(buf.Bytes())
}
