package examplegen

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Clip removes leading grapheme clusters from the start and trailing
// clusters from the end of text. A base character always stays together
// with its combining marks. Counts that cover the whole string yield "".
func Clip(text string, leading, trailing int) string {
	if leading < 0 {
		leading = 0
	}
	if trailing < 0 {
		trailing = 0
	}
	if leading == 0 && trailing == 0 {
		return text
	}

	var clusters []string
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		clusters = append(clusters, cluster)
	}

	if leading+trailing >= len(clusters) {
		return ""
	}
	return strings.Join(clusters[leading:len(clusters)-trailing], "")
}
