package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title    string
	Heading  string
	CTALabel string
	CTAURL   string
}

type leadNotificationEmailData struct {
	baseEmailData
	Reference      string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	ModelName      string
	TotalFormatted string
}

type followUpEmailData struct {
	baseEmailData
	CustomerName string
	ModelName    string
	Reference    string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// formatPounds renders a pence amount as pounds for email copy.
func formatPounds(pence int64) string {
	return fmt.Sprintf("£%.2f", float64(pence)/100)
}
