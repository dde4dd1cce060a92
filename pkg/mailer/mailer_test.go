package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/six-cities-api/pkg/mailer/templates"
)

func TestPrepare_RendersTemplate(t *testing.T) {
	job := &EmailJob{To: " ann@example.test ", Template: "Welcome", Data: map[string]any{"Name": "Ann"}}

	subject, text, _, err := Prepare(job, mailtpl.Render)
	require.NoError(t, err)

	assert.Equal(t, "ann@example.test", job.Data["Email"])
	assert.Equal(t, "Welcome to Six Cities, Ann", subject)
	assert.Contains(t, text, "ann@example.test")
}

func TestPrepare_Raw(t *testing.T) {
	job := &EmailJob{To: "x@example.test", Subject: "Hi", Text: "plain"}

	subject, text, html, err := Prepare(job, func(string, any) (string, string, string, error) {
		t.Fatal("render must not be called")
		return "", "", "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi", subject)
	assert.Equal(t, "plain", text)
	assert.Empty(t, html)
}
