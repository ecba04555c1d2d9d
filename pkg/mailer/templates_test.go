package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(TemplateWelcome, map[string]any{
		"FirstName": "Ann",
		"Email":     "ann@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the museum admin panel", subject)
	assert.Contains(t, text, "Hello Ann,")
	assert.Contains(t, text, "ann@example.com")
	assert.Contains(t, html, "<strong>ann@example.com</strong>")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render(TemplateWelcome, map[string]any{
		"FirstName": "<script>alert(1)</script>",
		"Email":     "ann@example.com",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("password-reset", nil)
	assert.Error(t, err)
}
