package dashboard

import (
	"encoding/json"
	"testing"

	"jira-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregatesFromJSON(t *testing.T, doc string) *models.Aggregates {
	t.Helper()
	var agg models.Aggregates
	require.NoError(t, json.Unmarshal([]byte(doc), &agg))
	return &agg
}

func Test_BuildCards_NilAggregates(t *testing.T) {
	t.Parallel()

	cards := BuildCards(nil)
	assert.Equal(t, CardSet{}, cards)
}

func Test_BuildCards_EmptyAggregates(t *testing.T) {
	t.Parallel()

	cards := BuildCards(aggregatesFromJSON(t, `{}`))
	assert.Equal(t, 0, cards.Total)
	assert.Equal(t, 0, cards.InProgress)
	assert.Equal(t, 0, cards.Done)
}

func Test_BuildCards_SumsStatusSynonyms(t *testing.T) {
	t.Parallel()

	agg := aggregatesFromJSON(t, `{
		"total": 12,
		"by_status": {
			"In Progress": 2,
			"Em Progresso": 3,
			"In development": 1,
			"Done": 4,
			"Concluído": 1,
			"Resolved": 1
		}
	}`)

	cards := BuildCards(agg)
	assert.Equal(t, 12, cards.Total)
	assert.Equal(t, 6, cards.InProgress)
	assert.Equal(t, 6, cards.Done)
}

func Test_BuildCards_MissingSynonymsCountZero(t *testing.T) {
	t.Parallel()

	agg := aggregatesFromJSON(t, `{"total": 5, "by_status": {"In Progress": 2, "To Do": 3}}`)

	cards := BuildCards(agg)
	assert.Equal(t, 5, cards.Total)
	assert.Equal(t, 2, cards.InProgress)
	assert.Equal(t, 0, cards.Done)
}

func Test_BuildCards_TotalNotValidatedAgainstStatusSum(t *testing.T) {
	t.Parallel()

	// total deliberately disagrees with the by_status sum; the card shows
	// the document value as-is.
	agg := aggregatesFromJSON(t, `{"total": 99, "by_status": {"Done": 1}}`)

	cards := BuildCards(agg)
	assert.Equal(t, 99, cards.Total)
	assert.Equal(t, 1, cards.Done)
}
