package social

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"
)

// DateLayout is the grouping key format for daily metrics. Dates are
// compared and sorted as plain strings, so the layout must sort
// chronologically (ISO 8601).
const DateLayout = "2006-01-02"

// Engagement holds the audience-reaction counters for a single post.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// Total returns the combined engagement for a post.
func (e Engagement) Total() int {
	return e.Likes + e.Comments + e.Shares
}

// Post represents one unit of collected social content.
type Post struct {
	Platform   string     `json:"platform"`
	Timestamp  time.Time  `json:"date"`
	Content    string     `json:"content"`
	Engagement Engagement `json:"engagement"`
	Sentiment  string     `json:"sentiment"`
	URL        string     `json:"url"`
}

// Validate reports whether the post satisfies the record contract.
// A violation is a programming error upstream, not a runtime condition.
func (p Post) Validate() error {
	if p.Platform == "" {
		return errors.New("platform is required")
	}
	if p.Sentiment == "" {
		return errors.New("sentiment is required")
	}
	if p.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	if p.Engagement.Likes < 0 || p.Engagement.Comments < 0 || p.Engagement.Shares < 0 {
		return errors.New("engagement counts must be non-negative")
	}
	return nil
}

// Day returns the post's daily grouping key in UTC.
func (p Post) Day() string {
	return p.Timestamp.UTC().Format(DateLayout)
}

// PlatformStats aggregates engagement for a single platform.
type PlatformStats struct {
	TotalEngagement int     `json:"total_engagement"`
	Posts           int     `json:"posts"`
	AvgEngagement   float64 `json:"avg_engagement"`
}

// SentimentStats aggregates post counts for a single sentiment label.
type SentimentStats struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DailyEngagement is one point of the daily engagement series.
type DailyEngagement struct {
	Date       string
	Engagement int
}

// DailySeries is the daily engagement time series, ordered ascending by
// date string. It serializes as a JSON object whose keys appear in
// series order.
type DailySeries []DailyEngagement

// MarshalJSON emits the series as an ordered date -> engagement object.
func (s DailySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(d.Date))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(d.Engagement))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a date -> engagement object, restoring
// ascending date order.
func (s *DailySeries) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	series := make(DailySeries, 0, len(m))
	for date, engagement := range m {
		series = append(series, DailyEngagement{Date: date, Engagement: engagement})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	*s = series
	return nil
}

// Snapshot is the aggregated, immutable summary of a post sequence.
// A snapshot is created fresh per aggregation call and owned by the
// caller; it is never written back into.
type Snapshot struct {
	TotalPosts      int                       `json:"total_posts"`
	TotalEngagement int                       `json:"total_engagement"`
	PlatformStats   map[string]PlatformStats  `json:"platform_stats"`
	SentimentStats  map[string]SentimentStats `json:"sentiment_stats"`
	DailyEngagement DailySeries               `json:"daily_engagement"`
	RawData         []Post                    `json:"raw_data"`
}

// SearchResult is the payload returned to a brand-search requester.
type SearchResult struct {
	Metrics  Snapshot `json:"metrics"`
	Insights []string `json:"insights"`
}

// SearchEvent is published after a completed brand search so that
// downstream consumers (spreadsheet mirror, dashboards) can process it
// without delaying the original requester.
type SearchEvent struct {
	ID          string    `json:"id"`
	Brand       string    `json:"brand"`
	Metrics     Snapshot  `json:"metrics"`
	Insights    []string  `json:"insights"`
	CompletedAt time.Time `json:"completed_at"`
}
