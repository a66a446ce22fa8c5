package render

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/exparse/core/ast"
)

const unknownCommand = "E492: Not an editor command: "

// Suggest returns the builtin command closest to the unknown command word,
// or "" when nothing is close. A candidate must contain the letters of word
// in order and be at most len(word) edits away.
func Suggest(word string) string {
	return closestMatch(word, ast.Names())
}

func closestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})
	if ranks[0].Distance > len(target) {
		return ""
	}
	return ranks[0].Target
}

// hint returns the "did you mean" text for an unknown command message.
func hint(message string) string {
	rest, ok := strings.CutPrefix(message, unknownCommand)
	if !ok {
		return ""
	}
	end := 0
	for end < len(rest) && isLower(rest[end]) {
		end++
	}
	if s := Suggest(rest[:end]); s != "" {
		return "did you mean :" + s + "?"
	}
	return ""
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
