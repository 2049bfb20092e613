package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	got := Sentences("First sentence. Second one! Third? trailing bit")
	assert.Equal(t, []string{"First sentence", "Second one", "Third", "trailing bit"}, got)
	assert.Empty(t, Sentences(""))
	assert.Empty(t, Sentences("..."))
}

func TestStanceSentences(t *testing.T) {
	text := "She supports universal pre-kindergarten funding for all families. " +
		"Born in Ohio. " +
		"He has proposed raising the state minimum wage to fifteen dollars. " +
		"They oppose the new zoning restrictions in downtown districts. " +
		"She believes that rural broadband expansion must be a priority."

	got := StanceSentences(text, 30, 200, 2)
	assert.Len(t, got, 2)
	assert.Contains(t, got[0], "supports universal pre-kindergarten")
	assert.Contains(t, got[1], "proposed raising the state minimum wage")
}

func TestStanceSentencesFiltersLength(t *testing.T) {
	// Contains a stance verb but is too short to be a real position.
	assert.Empty(t, StanceSentences("We support it.", 30, 200, 5))
}
