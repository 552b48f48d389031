// internal/service/collector/simulator.go

package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"brandpulse/internal/domain/social"
)

// Config contains configuration for the simulated collector. Known
// platform and sentiment labels are configuration data, not a schema:
// the aggregation downstream accepts any label it is handed.
type Config struct {
	Days       int
	Platforms  []string
	Sentiments []string
	DataDir    string
	Seed       int64
}

// DefaultConfig returns the default simulator configuration.
func DefaultConfig() Config {
	return Config{
		Days:       30,
		Platforms:  []string{"Instagram", "Facebook", "X"},
		Sentiments: []string{"positive", "negative", "neutral"},
		DataDir:    "data",
	}
}

// Simulator fabricates social posts for a brand. It stands in for real
// platform APIs behind the social.Collector interface.
type Simulator struct {
	config Config
	rng    *rand.Rand
	logger logrus.FieldLogger
}

// NewSimulator creates a new simulated collector. A zero seed
// randomizes from the clock.
func NewSimulator(config Config, logger logrus.FieldLogger) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Simulator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Collect generates posts for the brand and archives the batch as JSON.
// An archive failure is logged but never fails the collection.
func (s *Simulator) Collect(ctx context.Context, brand string) ([]social.Post, error) {
	s.logger.WithField("brand", brand).Info("Starting data collection")

	posts := s.generate(brand)

	if s.config.DataDir != "" {
		filename := slug(brand, "_") + "_data.json"
		if err := s.archive(posts, filename); err != nil {
			s.logger.WithError(err).Error("Error saving data to file")
		}
	}

	s.logger.WithFields(logrus.Fields{"brand": brand, "posts": len(posts)}).Info("Completed data collection")
	return posts, nil
}

// generate fabricates 1-5 posts per day over the configured window,
// ending today.
func (s *Simulator) generate(brand string) []social.Post {
	var posts []social.Post

	end := time.Now()
	start := end.AddDate(0, 0, -s.config.Days)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		perDay := s.rng.Intn(5) + 1

		for i := 0; i < perDay; i++ {
			posts = append(posts, social.Post{
				Platform:  s.pick(s.config.Platforms),
				Timestamp: day,
				Content:   fmt.Sprintf("Sample post about %s", brand),
				Engagement: social.Engagement{
					Likes:    s.rng.Intn(9901) + 100,
					Comments: s.rng.Intn(491) + 10,
					Shares:   s.rng.Intn(196) + 5,
				},
				Sentiment: s.pick(s.config.Sentiments),
				URL:       fmt.Sprintf("https://example.com/%s/%d", slug(brand, "-"), s.rng.Intn(9000)+1000),
			})
		}
	}

	return posts
}

func (s *Simulator) pick(options []string) string {
	return options[s.rng.Intn(len(options))]
}

// archive writes the generated batch to the data directory.
func (s *Simulator) archive(posts []social.Post, filename string) error {
	if err := os.MkdirAll(s.config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	payload, err := json.MarshalIndent(posts, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling posts: %w", err)
	}

	path := filepath.Join(s.config.DataDir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	s.logger.WithField("path", path).Debug("Saved collected data")
	return nil
}

func slug(brand, sep string) string {
	return strings.ToLower(strings.ReplaceAll(brand, " ", sep))
}
