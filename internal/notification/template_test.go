package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "Notification: FINANCE", buildSubject("FINANCE"))
}

func TestBuildEmailHTML_EscapesContent(t *testing.T) {
	html, err := buildEmailHTML("Notification: MOVIES", "<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, html, "Notification: MOVIES")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestTLSPolicyFromEncryption(t *testing.T) {
	assert.Equal(t, mail.TLSMandatory, tlsPolicyFromEncryption("ssl_tls"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicyFromEncryption("starttls"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption("none"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption(""))
}
