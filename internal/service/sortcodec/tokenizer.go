package sortcodec

import (
	"strings"

	"github.com/samber/lo"
)

// Tokenize splits raw on delimiter and drops tokens that are blank or made up only of dots.
// Surviving tokens are trimmed and keep their order.
func Tokenize(raw, delimiter string) []string {
	parts := []string{raw}
	if delimiter != "" {
		parts = strings.Split(raw, delimiter)
	}
	return lo.FilterMap(parts, func(part string, _ int) (string, bool) {
		return strings.TrimSpace(part), hasContentBesidesDots(part)
	})
}

func hasContentBesidesDots(token string) bool {
	return strings.TrimSpace(strings.ReplaceAll(token, ".", "")) != ""
}
