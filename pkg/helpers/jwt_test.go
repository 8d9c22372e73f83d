package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssueVerify(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Issue("5d7a514b5d2c12c7449be045")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	uid, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "5d7a514b5d2c12c7449be045", uid)
}

func TestJWTVerifyWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Issue("uid")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, _, err := m.Issue("uid")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyGarbage(t *testing.T) {
	_, err := NewJWTManager("test-secret", time.Hour).Verify("not.a.token")
	assert.Error(t, err)
}
