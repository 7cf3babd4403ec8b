package core

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/mail"
	"path"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/google/uuid"
)

var (
	//go:embed all:templates/email
	templatesFS embed.FS

	templates tmplCache
	tmplInit  sync.Once
)

type (
	tmplCache map[string]*texttmpl.Template // {name: *Template}

	EmailMessage struct {
		ID      uuid.UUID
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
	}

	ContextData struct {
		AppName         string
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
		// Wait blocks until every message sent so far is handled
		Wait()
	}
)

// NewEmailMessage returns a message with a fresh Message-ID.
func NewEmailMessage(subject string, to ...mail.Address) *EmailMessage {
	return &EmailMessage{
		ID:      uuid.New(),
		To:      to,
		Subject: subject,
	}
}

// MessageID formats the message ID for the Message-ID mail header.
func (m *EmailMessage) MessageID(host string) string {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return fmt.Sprintf("<%s@%s>", m.ID, host)
}

// Render renders the text content of the message.
func (m *EmailMessage) Render(conf *Config) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	} else if m.TemplateName == "" {
		return nil
	}

	tmplInit.Do(parseTemplates) // only execute once during first render
	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return fmt.Errorf("email template %q not found", m.TemplateName)
	}

	var buff bytes.Buffer
	data := ContextData{AppName: conf.AppName, FrontendBaseURL: conf.FrontendBaseURL, Data: m.TemplateData}
	if err := tmpl.ExecuteTemplate(&buff, "base", data); err != nil {
		return err
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }

func parseTemplates() {
	templates = make(tmplCache)

	root := path.Join("templates", "email")
	fps, err := fs.Glob(templatesFS, path.Join(root, "*.txt"))
	if err != nil {
		log.Print(fmt.Errorf("core.parseTemplates: %v", err))
		return
	}

	for _, fp := range fps {
		fname := path.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		name := strings.TrimSuffix(fname, path.Ext(fname))
		tmpl, err := texttmpl.ParseFS(templatesFS, path.Join(root, "_base.txt"), fp)
		if err != nil {
			log.Print(fmt.Errorf("core.parseTemplates: %v", err))
			continue
		}
		templates[name] = tmpl.Option("missingkey=error")
	}
}
