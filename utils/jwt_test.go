package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("admin@studio", "org-test", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	org, err := ExtractOrgFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "org-test", org)
}

func TestExpiredAdminTokenRejected(t *testing.T) {
	token, err := GenerateAdminToken("admin@studio", "org-test", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractOrgFromToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateAdminToken("admin@studio", "org-test", time.Hour)
	require.NoError(t, err)

	_, err = ExtractOrgFromToken(token + "x")
	assert.Error(t, err)
}

func TestTokenWithoutOrgClaimRejected(t *testing.T) {
	_, err := ExtractOrgFromToken("not-a-jwt")
	assert.Error(t, err)
}
