package listening

import (
	"fmt"
	"sort"

	"brandpulse/internal/domain/social"
)

// Aggregate computes a metrics snapshot from a sequence of posts.
//
// It is a pure function: no shared state, no I/O, safe to call
// concurrently for independent inputs. The empty sequence is valid and
// yields an all-zero snapshot with empty mappings. A malformed post is
// a contract violation and returns a descriptive error rather than
// being coerced or dropped.
func Aggregate(posts []social.Post) (social.Snapshot, error) {
	if posts == nil {
		posts = []social.Post{}
	}

	snapshot := social.Snapshot{
		TotalPosts:      len(posts),
		PlatformStats:   make(map[string]social.PlatformStats),
		SentimentStats:  make(map[string]social.SentimentStats),
		DailyEngagement: social.DailySeries{},
		RawData:         posts,
	}

	daily := make(map[string]int)

	for i, post := range posts {
		if err := post.Validate(); err != nil {
			return social.Snapshot{}, fmt.Errorf("post %d: %w", i, err)
		}

		engagement := post.Engagement.Total()
		snapshot.TotalEngagement += engagement

		platform := snapshot.PlatformStats[post.Platform]
		platform.Posts++
		platform.TotalEngagement += engagement
		snapshot.PlatformStats[post.Platform] = platform

		sentiment := snapshot.SentimentStats[post.Sentiment]
		sentiment.Count++
		snapshot.SentimentStats[post.Sentiment] = sentiment

		daily[post.Day()] += engagement
	}

	// Averages and percentages are derived after grouping so that the
	// integer accumulators stay exact. Both ratios are zero-guarded.
	for name, stats := range snapshot.PlatformStats {
		if stats.Posts > 0 {
			stats.AvgEngagement = float64(stats.TotalEngagement) / float64(stats.Posts)
		}
		snapshot.PlatformStats[name] = stats
	}

	for name, stats := range snapshot.SentimentStats {
		if snapshot.TotalPosts > 0 {
			stats.Percentage = float64(stats.Count) / float64(snapshot.TotalPosts) * 100
		}
		snapshot.SentimentStats[name] = stats
	}

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		snapshot.DailyEngagement = append(snapshot.DailyEngagement, social.DailyEngagement{
			Date:       date,
			Engagement: daily[date],
		})
	}

	return snapshot, nil
}
