package email

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContactEmailData is a contact-form submission addressed to the site owner.
type ContactEmailData struct {
	RecipientName  string
	RecipientEmail string
	SenderName     string
	SenderEmail    string
	Subject        string
	Body           string
	SiteName       string
}

// strictPolicy strips every tag; visitor input must never render as markup.
var strictPolicy = bluemonday.StrictPolicy()

// BuildContactEmail renders a contact-form submission as a text + HTML message
// with Reply-To pointing back at the visitor.
func BuildContactEmail(data ContactEmailData) Message {
	siteName := data.SiteName
	if siteName == "" {
		siteName = "Portfolio"
	}

	recipientName := data.RecipientName
	if recipientName == "" {
		recipientName = "there"
	}

	subject := fmt.Sprintf("[%s] %s", siteName, data.Subject)

	textBody := fmt.Sprintf(`Hi %s,

New contact form submission from your %s site:

Name: %s
Email: %s
Subject: %s

%s

---
Reply to this email to answer %s directly.`,
		recipientName, siteName, data.SenderName, data.SenderEmail, data.Subject, data.Body, data.SenderName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>New contact form submission from your %s site:</p>
    <table style="border-collapse: collapse; margin: 20px 0;">
        <tr><td style="color: #6b7280; padding-right: 12px;">Name</td><td>%s</td></tr>
        <tr><td style="color: #6b7280; padding-right: 12px;">Email</td><td>%s</td></tr>
        <tr><td style="color: #6b7280; padding-right: 12px;">Subject</td><td>%s</td></tr>
    </table>
    <p style="background-color: #f3f4f6; padding: 15px; border-radius: 6px;">%s</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Reply to this email to answer %s directly.</p>
</body>
</html>`,
		sanitize(recipientName), sanitize(siteName), sanitize(data.SenderName), sanitize(data.SenderEmail),
		sanitize(data.Subject), sanitizeMultiline(data.Body), sanitize(data.SenderName))

	return Message{
		To:       []string{data.RecipientEmail},
		ReplyTo:  data.SenderEmail,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

func sanitize(s string) string {
	return strictPolicy.Sanitize(s)
}

func sanitizeMultiline(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = sanitize(l)
	}
	return strings.Join(lines, "<br>")
}
