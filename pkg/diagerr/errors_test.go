package diagerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNil(t *testing.T) {
	assert.NoError(t, New(KindParse, "op", nil))
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := Validation("graphmodel.AddEdge", fmt.Errorf("%w: edge e1", ErrDanglingReference))
	wrapped := fmt.Errorf("connect: %w", base)

	k, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindValidation, k)
	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(wrapped, KindParse))
	assert.True(t, errors.Is(wrapped, ErrDanglingReference))
}

func TestKindOfUnclassified(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorString(t *testing.T) {
	err := Persistence("pagestore.Save", errors.New("disk full"))
	assert.Equal(t, "pagestore.Save: persistence: disk full", err.Error())

	err = New(KindBusy, "", ErrBusy)
	assert.Equal(t, "busy: request already in progress", err.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("raw"), "raw"},
		{Parse("aigen", ErrMalformedDocument), "AI service error: malformed diagram document"},
		{External("aigen", ErrUnavailable), "AI service error: service unavailable"},
		{Persistence("save", errors.New("timeout")), "Save failed: timeout"},
		{Busy("save"), "Please wait, a request is still running"},
		{Validation("x", ErrCycle), "Invalid change: group ancestry cycle"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, UserMessage(tc.err))
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "external service", KindExternalService.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
