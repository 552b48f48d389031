package insight

import (
	"fmt"
	"sort"
	"strings"

	"brandpulse/internal/domain/social"
)

// buildPrompt renders the analysis prompt from the snapshot. Platform
// and sentiment sections are sorted by label so the prompt is
// deterministic for a given snapshot.
func buildPrompt(brand string, snapshot social.Snapshot) string {
	var platformSummary []string
	for _, name := range sortedKeys(snapshot.PlatformStats) {
		stats := snapshot.PlatformStats[name]
		platformSummary = append(platformSummary,
			fmt.Sprintf("- %s: %d posts, %d total engagement", name, stats.Posts, stats.TotalEngagement))
	}

	var sentimentSummary []string
	for _, name := range sortedKeys(snapshot.SentimentStats) {
		stats := snapshot.SentimentStats[name]
		sentimentSummary = append(sentimentSummary,
			fmt.Sprintf("- %s: %d posts (%.1f%%)", name, stats.Count, stats.Percentage))
	}

	engagementRate := 0.0
	if snapshot.TotalPosts > 0 {
		engagementRate = float64(snapshot.TotalEngagement) / float64(snapshot.TotalPosts)
	}

	return fmt.Sprintf(`As a social media analytics expert, analyze the following data for %s and provide actionable insights.

Key Performance Indicators:
- Total Posts: %d
- Total Engagement: %d
- Average Engagement Rate: %.2f per post

Platform Performance:
%s

Sentiment Distribution:
%s

Please provide 3-5 actionable insights about:
1. Overall brand performance and engagement trends
2. Platform-specific recommendations for improvement
3. Sentiment analysis and brand perception
4. Content strategy recommendations
5. Opportunities for growth and engagement

Format each insight as a clear, concise statement with specific recommendations where applicable. Focus on actionable insights that can drive improvement. Do not use markdown formatting or special characters.`,
		brand,
		snapshot.TotalPosts,
		snapshot.TotalEngagement,
		engagementRate,
		strings.Join(platformSummary, "\n"),
		strings.Join(sentimentSummary, "\n"),
	)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
