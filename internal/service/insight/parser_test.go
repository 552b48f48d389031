package insight

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseInsights(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list",
			text: "1. focus on Instagram growth this quarter\n2. respond faster to negative mentions",
			want: []string{
				"• Focus on Instagram growth this quarter.",
				"• Respond faster to negative mentions.",
			},
		},
		{
			name: "bullets and blank lines",
			text: "- engagement is trending upward on Facebook\n\n* negative sentiment concentrates on X platform.",
			want: []string{
				"• Engagement is trending upward on Facebook.",
				"• Negative sentiment concentrates on X platform.",
			},
		},
		{
			name: "short fragments dropped",
			text: "ok\nyes\nconsider a weekly posting cadence for stability",
			want: []string{"• Consider a weekly posting cadence for stability."},
		},
		{
			name: "short fragments measured in characters",
			text: "エンゲージメント向上\npartner with creators to lift engagement on X",
			want: []string{"• Partner with creators to lift engagement on X."},
		},
		{
			name: "empty response",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInsights(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseInsights = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInsightsCapsAtFive(t *testing.T) {
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, "another actionable recommendation for the brand")
	}

	got := parseInsights(strings.Join(lines, "\n"))
	if len(got) != maxInsights {
		t.Errorf("len = %d, want %d", len(got), maxInsights)
	}
}
