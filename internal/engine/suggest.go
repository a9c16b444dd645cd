// Completion: 100% - Utility module complete
package engine

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a suggestion
const maxSuggestDistance = 3

// Suggest returns up to max candidates within a small edit distance of
// name, closest first. An exact match is not a suggestion.
func Suggest(name string, candidates []string, max int) []string {
	type suggestion struct {
		name     string
		distance int
	}

	var suggestions []suggestion
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(name, c)
		if dist <= maxSuggestDistance && dist > 0 {
			suggestions = append(suggestions, suggestion{c, dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance == suggestions[j].distance {
			return suggestions[i].name < suggestions[j].name
		}
		return suggestions[i].distance < suggestions[j].distance
	})

	result := make([]string, 0, max)
	for i := 0; i < len(suggestions) && i < max; i++ {
		result = append(result, suggestions[i].name)
	}
	return result
}
