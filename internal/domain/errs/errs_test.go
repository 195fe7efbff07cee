package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsMatchByKind(t *testing.T) {
	err := Unavailable("ledger.CreateLoan", "no copies of %q left", "Dune")

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, `ledger.CreateLoan: no copies of "Dune" left`, err.Error())

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, ErrUnavailable)
	assert.Equal(t, KindUnavailable, KindOf(wrapped))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify("op", nil))

	nf := NotFound("op", "book not found")
	assert.Same(t, nf, Classify("outer", nf))

	raw := errors.New("disk I/O error")
	got := Classify("ledger.ReturnLoan", raw)
	assert.ErrorIs(t, got, ErrStorage)
	assert.ErrorIs(t, got, raw)

	timeout := Classify("ledger.Stats", context.DeadlineExceeded)
	assert.ErrorIs(t, timeout, ErrStorage)
	assert.Contains(t, timeout.Error(), "timed out")
}

func TestClassify_AttributesUntaggedErrors(t *testing.T) {
	raw := NotFound("", "library not found")
	got := Classify("ledger.CreateBook", raw)

	assert.Equal(t, "ledger.CreateBook: library not found", got.Error())
	assert.ErrorIs(t, got, ErrNotFound)
	assert.Empty(t, raw.Op, "the original is left alone")

	wrapped := fmt.Errorf("ctx: %w", NotFound("", "book not found"))
	assert.Same(t, wrapped, Classify("outer", wrapped))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid_member", KindInvalidMember.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}
