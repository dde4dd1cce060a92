package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	data := NewWelcomeData("six-cities", "Ann", "ann@example.test", WithUserType("pro"), WithLoginURL("https://six.test/login"))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to six-cities, Ann", subject)
	assert.Contains(t, text, "Your pro account (ann@example.test) is ready.")
	assert.Contains(t, html, `<a href="https://six.test/login">`)
}

func TestRenderWelcome_Defaults(t *testing.T) {
	subject, text, _, err := Render(Welcome, NewWelcomeData("", "Bo", "bo@example.test"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Six Cities, Bo", subject)
	assert.Contains(t, text, "Your normal account")
	assert.NotContains(t, text, "Sign in at")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
