package templates

import (
	"encoding/json"
	"strings"
)

// EmailData defines the fields templates may reference.
type EmailData struct {
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	AppName  string `json:"AppName"`
	UserType string `json:"UserType"`
	LoginURL string `json:"LoginURL"`
}

// Option pattern
type Option func(*EmailData)

func WithLoginURL(url string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(url); s != "" {
			d.LoginURL = s
		}
	}
}

func WithUserType(t string) Option { return func(d *EmailData) { d.UserType = t } }

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

func NewWelcomeData(appName, name, email string, opts ...Option) map[string]any {
	d := EmailData{Name: name, Email: email, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
