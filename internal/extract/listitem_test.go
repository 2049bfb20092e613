package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListItem(t *testing.T) {
	tests := []struct {
		name string
		line string
		rest string
		ok   bool
	}{
		{"numbered dot", "1. Jane Doe - Governor", "Jane Doe - Governor", true},
		{"numbered paren", "2) Michael Chen", "Michael Chen", true},
		{"dash bullet", "- Robert Williams (D)", "Robert Williams (D)", true},
		{"unicode bullet", "• Maria Lopez", "Maria Lopez", true},
		{"star bullet", "* Alex Kim, Mayor", "Alex Kim, Mayor", true},
		{"bold wrapped marker", "**1.** Jane Doe", "Jane Doe", true},
		{"bold after marker", "1. **Jane Doe** - Governor", "Jane Doe** - Governor", true},
		{"leading whitespace", "  3. Sam Green", "Sam Green", true},
		{"narrative prose", "These candidates are leading the polls.", "", false},
		{"empty line", "", "", false},
		{"marker only", "1. ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, ok := ListItem(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		rest string
		want string
		ok   bool
	}{
		{"dash delimiter", "Jane Doe - Governor", "Jane Doe", true},
		{"colon delimiter", "Jane Doe: running for Senate", "Jane Doe", true},
		{"paren delimiter", "Jane Doe (D)", "Jane Doe", true},
		{"comma delimiter", "Jane Doe, Texas", "Jane Doe", true},
		{"no delimiter", "Jane Doe", "Jane Doe", true},
		{"bold stripped", "Jane Doe** - Governor", "Jane Doe", true},
		{"too short", "Jo - Governor", "", false},
		{"empty", "", "", false},
		{"markup only", "** - Governor", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Name(tt.rest)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoldSpan(t *testing.T) {
	got, ok := BoldSpan("intro **Jane Doe** outro")
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", got)

	_, ok = BoldSpan("no markup here")
	assert.False(t, ok)

	_, ok = BoldSpan("dangling **bold")
	assert.False(t, ok)

	_, ok = BoldSpan("****")
	assert.False(t, ok)
}
