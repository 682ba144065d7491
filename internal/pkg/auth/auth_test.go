package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Restaurant POS"},
		JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", SessionExpiry: time.Hour},
	}
}

func TestSessionToken(t *testing.T) {
	t.Parallel()

	j := NewJWTManager(testConfig())
	token, expires, err := j.GenerateSessionToken("sess-1", "caja@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := j.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "caja@example.com", claims.Email)

	other := testConfig()
	other.JWT.Secret = "another-secret-another-secret-xx"
	_, err = NewJWTManager(other).ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionTokenExpires(t *testing.T) {
	t.Parallel()

	j := NewJWTManager(testConfig())
	token, _, err := j.GenerateSessionToken("sess-1", "")
	require.NoError(t, err)

	j.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = j.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}

func TestPIN(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewPINManager("").Check("anything"))
	assert.False(t, NewPINManager("").Enabled())

	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	p := NewPINManager(string(hash))
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Check("4321"))
	assert.ErrorIs(t, p.Check("0000"), ErrInvalidPIN)

	assert.Error(t, ValidatePIN("12"))
	assert.Error(t, ValidatePIN("12ab"))
	assert.NoError(t, ValidatePIN("123456"))
	_, err = HashPIN("x")
	assert.Error(t, err)
}
