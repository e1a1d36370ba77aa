package mailer

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var classCreatedTmpl = template.Must(template.ParseFS(templatesFS, "templates/class_created.tmpl"))

// NoticeSlot is one schedule line of a notice, already formatted.
type NoticeSlot struct {
	Day  string
	From string
	To   string
}

// ClassNotice is the data rendered into the "new class" email.
type ClassNotice struct {
	TutorName string
	Whatsapp  string
	Subject   string
	Cost      float64
	Schedule  []NoticeSlot
}

// RenderClassCreated returns the subject line and text body for n.
func RenderClassCreated(n ClassNotice) (string, string, error) {
	var subject, body bytes.Buffer
	if err := classCreatedTmpl.ExecuteTemplate(&subject, "subject", n); err != nil {
		return "", "", err
	}
	if err := classCreatedTmpl.ExecuteTemplate(&body, "body", n); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(subject.String()), strings.TrimSpace(body.String()) + "\n", nil
}
