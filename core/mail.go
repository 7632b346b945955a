package core

import (
	"bytes"
	"fmt"
	"net/mail"
	"sync"
	texttmpl "text/template"
)

var (
	tmplMu    sync.RWMutex
	templates = make(map[string]*texttmpl.Template)
)

// RegisterEmailTemplate parses and caches a named text template.
// Packages register their templates at init time.
func RegisterEmailTemplate(name, tmpl string) {
	tmplMu.Lock()
	defer tmplMu.Unlock()
	templates[name] = texttmpl.Must(texttmpl.New(name).Parse(tmpl))
}

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render resolves the message body: either the registered template
// executed with TemplateData, or the plain BodyStr.
func (m *EmailMessage) Render() error {
	if m.TemplateName == "" {
		m.TextContent = m.BodyStr
		return nil
	}

	tmplMu.RLock()
	tmpl, ok := templates[m.TemplateName]
	tmplMu.RUnlock()
	if !ok {
		return fmt.Errorf("email template %q is not registered", m.TemplateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m.TemplateData); err != nil {
		return err
	}
	m.TextContent = buf.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return (len(m.To) + len(m.Cc) + len(m.Bcc)) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != ""
}
