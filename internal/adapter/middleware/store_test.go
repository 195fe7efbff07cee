package middleware

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	k := buildKey("POST", "/loans/:loan_id/return", "-", strings.Repeat("a", 32))
	assert.Equal(t, "idemp:biblios:post:/loans/:loan_id/return:-:"+strings.Repeat("a", 32), k)
}

func TestNormalizeRequestID(t *testing.T) {
	got, ok := normalizeRequestID(" 3F2504E0-4F89-41D3-9A0C-0305E82C3301 ")
	require.True(t, ok)
	assert.Equal(t, "3f2504e04f8941d39a0c0305e82c3301", got)

	got, ok = normalizeRequestID(strings.Repeat("b", 32))
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("b", 32), got)

	for _, bad := range []string{"", "abc", strings.Repeat("z", 32), "req-1"} {
		_, ok := normalizeRequestID(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseRequestAt(t *testing.T) {
	want := time.Date(2025, 1, 6, 0, 30, 56, 0, time.UTC)

	got, err := parseRequestAt("1736123456")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = parseRequestAt("1736123456789")
	require.NoError(t, err)
	assert.Equal(t, want.Add(789*time.Millisecond), got)

	got, err = parseRequestAt("2025-01-06T07:30:56+07:00")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, time.UTC, got.Location())

	for _, bad := range []string{"", "2025-01-06T07:30:56", "yesterday"} {
		_, err := parseRequestAt(bad)
		assert.Error(t, err, bad)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	ctx := context.Background()

	ok, err := provisionalSet(ctx, rdb, "k", idempEntry{InProgress: true, RequestID: "r"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, provisionalLockTTL, mr.TTL("k"))

	ok, err = provisionalSet(ctx, rdb, "k", idempEntry{InProgress: true})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, saveFinal(ctx, rdb, "k", idempEntry{Code: 201, Body: []byte(`{"id":"x"}`)}, time.Minute))
	got, err := loadEntry(ctx, rdb, "k")
	require.NoError(t, err)
	assert.False(t, got.InProgress)
	assert.Equal(t, 201, got.Code)
	assert.JSONEq(t, `{"id":"x"}`, string(got.Body))

	_, err = loadEntry(ctx, rdb, "missing")
	assert.Error(t, err)
}
