package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqarfin/estate_ledger/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 15, 9, 30, 0, 123456789, time.UTC)
	id := "0d4b7e82-6c1f-4f7a-9a34-6d1c2b3a4e5f"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, gotTime.Equal(createdAt))
	assert.Equal(t, id, gotID)
}

func TestTokenRoundTrip_IDContainsSeparator(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	id := "entry|with|pipes"

	token := pagination.EncodeToken(createdAt, id)
	_, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-valid-base64!!!")

	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("no-separator-here"))

	_, _, err := pagination.DecodeToken(token)

	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|some-id"))

	_, _, err := pagination.DecodeToken(token)

	assert.Error(t, err)
}
