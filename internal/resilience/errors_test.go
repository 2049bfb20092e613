package resilience

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(eris.New("validation failed")))

	assert.True(t, IsTransient(NewTransientError(eris.New("too many requests"), 429)))

	// TransientError deep in a wrap chain is still found.
	wrapped := eris.Wrap(NewTransientError(eris.New("gateway"), 502), "research: send request")
	assert.True(t, IsTransient(wrapped))

	// String heuristics on flattened client errors.
	assert.True(t, IsTransient(eris.New("Get \"https://x\": dial tcp: i/o timeout")))
	assert.True(t, IsTransient(eris.New("read: connection reset by peer")))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 201, 400, 401, 403, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}

func TestTransientErrorUnwrap(t *testing.T) {
	inner := eris.New("boom")
	te := NewTransientError(inner, 500)
	assert.Equal(t, "boom", te.Error())
	assert.Equal(t, inner, te.Unwrap())
	assert.Equal(t, 500, te.StatusCode)
}
