// Package parser converts prompt answers into engine inputs.
// Intentionally dumb: anything unrecognized is the safe default.
package parser

import (
	"strings"

	"github.com/nathoo/dungeonrun/types"
)

// PathChoice parses the answer to the fork prompt. "2" is the dark path;
// everything else, including empty input, is the well-lit path.
func PathChoice(input string) types.PathChoice {
	if strings.TrimSpace(input) == "2" {
		return types.PathDark
	}
	return types.PathSafe
}

var yesWords = map[string]bool{
	"y":   true,
	"yes": true,
}

// YesNo parses a y/n answer. Only an explicit yes counts.
func YesNo(input string) bool {
	return yesWords[strings.ToLower(strings.TrimSpace(input))]
}
