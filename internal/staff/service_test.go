package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "wathiq/pkg/domain-errors"
	audit "wathiq/pkg/platform/audit"
	"wathiq/pkg/platform/audit/publisher"
	auditmem "wathiq/pkg/platform/audit/store/memory"
)

func testService(t *testing.T) (*Service, *TokenService, *auditmem.InMemoryStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := NewTokenService("test-signing-key", time.Hour)
	store := auditmem.NewInMemoryStore()
	pub := publisher.NewPublisher(store)
	t.Cleanup(pub.Close)

	return NewService(string(hash), tokens, WithAuditPublisher(pub)), tokens, store
}

func TestLoginIssuesValidToken(t *testing.T) {
	service, tokens, store := testService(t)

	token, err := service.Login(context.Background(), "registry", "sesame")
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "registry", claims.Subject)

	assert.Len(t, store.ByAction(audit.ActionStaffLogin), 1)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _, store := testService(t)

	_, err := service.Login(context.Background(), "registry", "wrong")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))

	assert.Len(t, store.ByAction(audit.ActionStaffLoginFailed), 1)
}

func TestLoginRejectsEmptyUsername(t *testing.T) {
	service, _, _ := testService(t)

	_, err := service.Login(context.Background(), "", "sesame")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestValidateRejectsForeignToken(t *testing.T) {
	_, tokens, _ := testService(t)

	other := NewTokenService("another-key", time.Hour)
	token, err := other.Issue("registry")
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-signing-key", -time.Minute)
	token, err := tokens.Issue("registry")
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}
