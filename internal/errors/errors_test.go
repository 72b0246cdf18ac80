package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder_BuildCarriesMetadata(t *testing.T) {
	t.Parallel()

	base := NewStd("boom")
	err := New(fmt.Errorf("wrapping: %w", base)).
		Component("session").
		Category(CategorySession).
		Context("session_id", "abc").
		Build()

	assert.Equal(t, "wrapping: boom", err.Error())
	assert.Equal(t, "session", err.Component)
	assert.Equal(t, CategorySession, err.Category)
	assert.True(t, Is(err, base), "wrapped chain is preserved")

	ctx := err.GetContext()
	require.NotNil(t, ctx)
	assert.Equal(t, "abc", ctx["session_id"])

	ctx["session_id"] = "mutated"
	assert.Equal(t, "abc", err.GetContext()["session_id"], "stored context keeps the value set before the caller's mutation")
}

func TestErrorBuilder_Defaults(t *testing.T) {
	t.Parallel()

	err := Newf("bare %s", "error").Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
	assert.False(t, err.Timestamp.IsZero())
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	dbErr := Newf("locked").Category(CategoryDatabase).Build()
	wrapped := fmt.Errorf("saving: %w", dbErr)

	assert.True(t, IsCategory(wrapped, CategoryDatabase))
	assert.False(t, IsCategory(wrapped, CategoryMQTT))
	assert.False(t, IsCategory(NewStd("plain"), CategoryDatabase))
}

func TestLogAttrs(t *testing.T) {
	t.Parallel()

	err := Newf("x").Component("matcher").Category(CategoryMatching).Context("text", "neem").Build()
	attrs := err.LogAttrs()
	assert.Contains(t, attrs, "matcher")
	assert.Contains(t, attrs, "matching")
	assert.Contains(t, attrs, "neem")
}
