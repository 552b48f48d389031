package sheets

import (
	"fmt"
	"sort"

	"brandpulse/internal/domain/social"
)

// buildDataRows renders the raw post table: a header row followed by
// one row per post.
func buildDataRows(posts []social.Post) [][]interface{} {
	rows := [][]interface{}{dataHeaders}

	for _, post := range posts {
		rows = append(rows, []interface{}{
			post.Timestamp.Format("2006-01-02 15:04:05"),
			post.Platform,
			post.Content,
			post.Engagement.Likes,
			post.Engagement.Comments,
			post.Engagement.Shares,
			post.Sentiment,
			post.URL,
		})
	}

	return rows
}

// buildMetricsRows renders the metrics worksheet: totals, the platform
// and sentiment tables, and the insight list. Platform post counts are
// recomputed from the raw posts and zero-guarded the same way the
// aggregation guards its own ratios.
func buildMetricsRows(event social.SearchEvent) [][]interface{} {
	metrics := event.Metrics

	engagementRate := "0"
	if metrics.TotalPosts > 0 {
		engagementRate = fmt.Sprintf("%.2f", float64(metrics.TotalEngagement)/float64(metrics.TotalPosts))
	}

	rows := [][]interface{}{
		{"Metrics", "Value"},
		{"Total Posts", metrics.TotalPosts},
		{"Total Engagement", metrics.TotalEngagement},
		{"Average Engagement Rate", engagementRate},
		{},
		{"Platform Statistics"},
		{"Platform", "Total Engagement", "Posts", "Avg. Engagement"},
	}

	postsByPlatform := make(map[string]int)
	for _, post := range metrics.RawData {
		postsByPlatform[post.Platform]++
	}

	for _, platform := range sortedKeys(metrics.PlatformStats) {
		stats := metrics.PlatformStats[platform]
		posts := postsByPlatform[platform]

		avg := 0.0
		if posts > 0 {
			avg = float64(stats.TotalEngagement) / float64(posts)
		}

		rows = append(rows, []interface{}{platform, stats.TotalEngagement, posts, fmt.Sprintf("%.2f", avg)})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Sentiment Distribution"},
		[]interface{}{"Sentiment", "Count", "Percentage"},
	)

	for _, sentiment := range sortedKeys(metrics.SentimentStats) {
		stats := metrics.SentimentStats[sentiment]
		rows = append(rows, []interface{}{sentiment, stats.Count, fmt.Sprintf("%.1f%%", stats.Percentage)})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"AI-Generated Insights"},
	)

	if len(event.Insights) == 0 {
		rows = append(rows, []interface{}{"No insights available"})
	}
	for _, insight := range event.Insights {
		rows = append(rows, []interface{}{insight})
	}

	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
