package insight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxInsights caps how many insights are surfaced to the caller.
const maxInsights = 5

// parseInsights turns a raw model response into a clean list of bullet
// insights: list markers stripped, short fragments dropped, each
// insight capitalized and ended with a period.
func parseInsights(text string) []string {
	var insights []string

	for _, line := range strings.Split(text, "\n") {
		insight := strings.TrimLeft(strings.TrimSpace(line), "1234567890.*- ")
		if utf8.RuneCountInString(insight) <= 10 {
			continue
		}

		runes := []rune(insight)
		runes[0] = unicode.ToUpper(runes[0])
		insight = string(runes)

		if !strings.HasSuffix(insight, ".") {
			insight += "."
		}

		insights = append(insights, "• "+insight)
		if len(insights) == maxInsights {
			break
		}
	}

	return insights
}
