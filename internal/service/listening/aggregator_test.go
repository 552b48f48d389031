package listening

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"brandpulse/internal/domain/social"
)

func post(platform, sentiment, day string, likes, comments, shares int) social.Post {
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return social.Post{
		Platform:   platform,
		Timestamp:  ts,
		Content:    "post",
		Engagement: social.Engagement{Likes: likes, Comments: comments, Shares: shares},
		Sentiment:  sentiment,
		URL:        "https://example.com/post",
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	snapshot, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("aggregate empty: %v", err)
	}

	if snapshot.TotalPosts != 0 {
		t.Errorf("total posts = %d, want 0", snapshot.TotalPosts)
	}
	if snapshot.TotalEngagement != 0 {
		t.Errorf("total engagement = %d, want 0", snapshot.TotalEngagement)
	}
	if len(snapshot.PlatformStats) != 0 {
		t.Errorf("platform stats = %v, want empty", snapshot.PlatformStats)
	}
	if len(snapshot.SentimentStats) != 0 {
		t.Errorf("sentiment stats = %v, want empty", snapshot.SentimentStats)
	}
	if len(snapshot.DailyEngagement) != 0 {
		t.Errorf("daily engagement = %v, want empty", snapshot.DailyEngagement)
	}
	if len(snapshot.RawData) != 0 {
		t.Errorf("raw data = %v, want empty", snapshot.RawData)
	}

	// The empty snapshot must serialize with empty containers, not nulls.
	payload, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for field, want := range map[string]string{
		"platform_stats":   "{}",
		"sentiment_stats":  "{}",
		"daily_engagement": "{}",
		"raw_data":         "[]",
	} {
		if got := string(decoded[field]); got != want {
			t.Errorf("%s = %s, want %s", field, got, want)
		}
	}
}

func TestAggregateTwoRecordScenario(t *testing.T) {
	posts := []social.Post{
		post("X", "positive", "2024-01-01", 10, 0, 0),
		post("X", "negative", "2024-01-02", 20, 0, 0),
	}

	snapshot, err := Aggregate(posts)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if snapshot.TotalPosts != 2 {
		t.Errorf("total posts = %d, want 2", snapshot.TotalPosts)
	}
	if snapshot.TotalEngagement != 30 {
		t.Errorf("total engagement = %d, want 30", snapshot.TotalEngagement)
	}

	wantPlatform := social.PlatformStats{TotalEngagement: 30, Posts: 2, AvgEngagement: 15.0}
	if got := snapshot.PlatformStats["X"]; got != wantPlatform {
		t.Errorf("platform stats = %+v, want %+v", got, wantPlatform)
	}

	wantSentiments := map[string]social.SentimentStats{
		"positive": {Count: 1, Percentage: 50.0},
		"negative": {Count: 1, Percentage: 50.0},
	}
	if !reflect.DeepEqual(snapshot.SentimentStats, wantSentiments) {
		t.Errorf("sentiment stats = %+v, want %+v", snapshot.SentimentStats, wantSentiments)
	}

	wantDaily := social.DailySeries{
		{Date: "2024-01-01", Engagement: 10},
		{Date: "2024-01-02", Engagement: 20},
	}
	if !reflect.DeepEqual(snapshot.DailyEngagement, wantDaily) {
		t.Errorf("daily engagement = %+v, want %+v", snapshot.DailyEngagement, wantDaily)
	}
}

func TestAggregateConservationInvariants(t *testing.T) {
	posts := []social.Post{
		post("Instagram", "positive", "2024-03-05", 100, 10, 5),
		post("Facebook", "neutral", "2024-03-04", 50, 5, 0),
		post("Instagram", "negative", "2024-03-05", 75, 0, 25),
		post("X", "positive", "2024-03-01", 0, 0, 0),
		post("TikTok", "ecstatic", "2024-03-03", 1, 2, 3),
	}

	snapshot, err := Aggregate(posts)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	platformPosts := 0
	platformEngagement := 0
	for _, stats := range snapshot.PlatformStats {
		platformPosts += stats.Posts
		platformEngagement += stats.TotalEngagement
	}
	if platformPosts != snapshot.TotalPosts {
		t.Errorf("sum of platform posts = %d, want %d", platformPosts, snapshot.TotalPosts)
	}
	if platformEngagement != snapshot.TotalEngagement {
		t.Errorf("sum of platform engagement = %d, want %d", platformEngagement, snapshot.TotalEngagement)
	}

	sentimentCount := 0
	for _, stats := range snapshot.SentimentStats {
		sentimentCount += stats.Count
	}
	if sentimentCount != snapshot.TotalPosts {
		t.Errorf("sum of sentiment counts = %d, want %d", sentimentCount, snapshot.TotalPosts)
	}

	dailyTotal := 0
	for _, day := range snapshot.DailyEngagement {
		dailyTotal += day.Engagement
	}
	if dailyTotal != snapshot.TotalEngagement {
		t.Errorf("sum of daily engagement = %d, want %d", dailyTotal, snapshot.TotalEngagement)
	}

	// Unknown labels create entries instead of being rejected.
	if _, ok := snapshot.PlatformStats["TikTok"]; !ok {
		t.Error("expected platform entry for TikTok")
	}
	if _, ok := snapshot.SentimentStats["ecstatic"]; !ok {
		t.Error("expected sentiment entry for ecstatic")
	}
}

func TestAggregateDailyOrderAscending(t *testing.T) {
	// Input deliberately unordered; grouping handles ordering internally.
	posts := []social.Post{
		post("X", "neutral", "2024-02-20", 5, 0, 0),
		post("X", "neutral", "2024-01-15", 3, 0, 0),
		post("X", "neutral", "2024-02-01", 4, 0, 0),
		post("X", "neutral", "2024-01-15", 2, 0, 0),
	}

	snapshot, err := Aggregate(posts)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	for i := 1; i < len(snapshot.DailyEngagement); i++ {
		if snapshot.DailyEngagement[i-1].Date >= snapshot.DailyEngagement[i].Date {
			t.Fatalf("daily series not strictly ascending: %+v", snapshot.DailyEngagement)
		}
	}

	wantDaily := social.DailySeries{
		{Date: "2024-01-15", Engagement: 5},
		{Date: "2024-02-01", Engagement: 4},
		{Date: "2024-02-20", Engagement: 5},
	}
	if !reflect.DeepEqual(snapshot.DailyEngagement, wantDaily) {
		t.Errorf("daily engagement = %+v, want %+v", snapshot.DailyEngagement, wantDaily)
	}
}

func TestAggregateZeroGuard(t *testing.T) {
	snapshot, err := Aggregate([]social.Post{post("X", "positive", "2024-01-01", 1, 0, 0)})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if got := snapshot.PlatformStats["X"].AvgEngagement; got != 1.0 {
		t.Errorf("avg engagement = %v, want 1.0", got)
	}
	if got := snapshot.SentimentStats["positive"].Percentage; got != 100.0 {
		t.Errorf("percentage = %v, want 100.0", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	posts := []social.Post{
		post("Instagram", "positive", "2024-03-05", 100, 10, 5),
		post("Facebook", "neutral", "2024-03-04", 50, 5, 0),
	}

	first, err := Aggregate(posts)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := Aggregate(posts)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshots differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregateRejectsMalformedPosts(t *testing.T) {
	valid := post("X", "positive", "2024-01-01", 1, 2, 3)

	tests := []struct {
		name   string
		mutate func(*social.Post)
	}{
		{"missing platform", func(p *social.Post) { p.Platform = "" }},
		{"missing sentiment", func(p *social.Post) { p.Sentiment = "" }},
		{"zero timestamp", func(p *social.Post) { p.Timestamp = time.Time{} }},
		{"negative likes", func(p *social.Post) { p.Engagement.Likes = -1 }},
		{"negative comments", func(p *social.Post) { p.Engagement.Comments = -5 }},
		{"negative shares", func(p *social.Post) { p.Engagement.Shares = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := valid
			tt.mutate(&bad)

			if _, err := Aggregate([]social.Post{valid, bad}); err == nil {
				t.Fatal("expected error for malformed post")
			}
		})
	}
}

func TestAggregateDropsTimeOfDay(t *testing.T) {
	morning := post("X", "neutral", "2024-04-01", 1, 0, 0)
	morning.Timestamp = morning.Timestamp.Add(8 * time.Hour)
	evening := post("X", "neutral", "2024-04-01", 2, 0, 0)
	evening.Timestamp = evening.Timestamp.Add(22 * time.Hour)

	snapshot, err := Aggregate([]social.Post{morning, evening})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	wantDaily := social.DailySeries{{Date: "2024-04-01", Engagement: 3}}
	if !reflect.DeepEqual(snapshot.DailyEngagement, wantDaily) {
		t.Errorf("daily engagement = %+v, want %+v", snapshot.DailyEngagement, wantDaily)
	}
}
