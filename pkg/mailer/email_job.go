package mailer

import "strings"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered by the worker) or Subject/Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Normalize fills template data that defaults to the recipient.
func (j *EmailJob) Normalize() {
	j.To = strings.TrimSpace(j.To)
	j.Template = strings.ToLower(strings.TrimSpace(j.Template))
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"].(string); !ok || v == "" {
		j.Data["Email"] = j.To
	}
}
