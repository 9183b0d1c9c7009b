package service

import (
	"fmt"
	"html/template"
	"strings"

	"renthub/internal/domain"
)

// Email bodies are rendered from a single fixed layout; no template library
// appears in the stack and html/template covers escaping.
var emailTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f5f5f5; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="margin-top: 0; color: #1a1a2e;">{{.Title}}</h2>
    <p style="color: #444444;">Hi {{.FirstName}},</p>
    <p style="color: #444444;">{{.Message}}</p>
    <p style="margin: 32px 0;">
      <a href="{{.ActionURL}}" style="background: #2f6fed; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">{{.ActionLabel}}</a>
    </p>
    <p style="color: #999999; font-size: 12px;">You received this email because of your notification settings. You can change them in your account preferences.</p>
  </div>
</body>
</html>`))

type emailContext struct {
	Title       string
	FirstName   string
	Message     string
	ActionURL   string
	ActionLabel string
}

// RenderEmail produces the HTML and plain-text bodies for one notification.
func RenderEmail(n *domain.Notification, firstName, baseURL string) (string, string) {
	payload := BuildPushPayload(n, baseURL)

	label := "Open RentHub"
	if len(payload.Actions) > 0 {
		label = payload.Actions[0].Title
	}

	ctx := emailContext{
		Title:       n.Title,
		FirstName:   firstName,
		Message:     n.Message,
		ActionURL:   payload.URL,
		ActionLabel: label,
	}

	var html strings.Builder
	if err := emailTemplate.Execute(&html, ctx); err != nil {
		// Fall back to plain text in both parts rather than dropping the send.
		text := renderText(ctx)
		return text, text
	}

	return html.String(), renderText(ctx)
}

func renderText(ctx emailContext) string {
	return fmt.Sprintf("Hi %s,\n\n%s\n\n%s: %s\n", ctx.FirstName, ctx.Message, ctx.ActionLabel, ctx.ActionURL)
}
