package dashboard

import "jira-dashboard/internal/models"

// Status labels counted into each summary card. The tracked projects mix
// English and Portuguese workflows, so each bucket carries its known
// synonyms; labels missing from the aggregates count as zero.
var (
	inProgressStatuses = []string{"In Progress", "Em Progresso", "In development"}
	doneStatuses       = []string{"Done", "Concluído", "Resolved"}
)

// CardSet holds the three summary numbers shown at the top of the page.
type CardSet struct {
	Total      int
	InProgress int
	Done       int
}

// BuildCards computes the summary cards from aggregate counts. Every field
// is optional; a nil aggregates object yields an all-zero set.
func BuildCards(agg *models.Aggregates) CardSet {
	if agg == nil {
		return CardSet{}
	}
	return CardSet{
		Total:      agg.Total,
		InProgress: sumLabels(&agg.ByStatus, inProgressStatuses),
		Done:       sumLabels(&agg.ByStatus, doneStatuses),
	}
}

func sumLabels(counts *models.CountMap, labels []string) int {
	total := 0
	for _, label := range labels {
		total += counts.Get(label)
	}
	return total
}
