// internal/service/listening/service.go

package listening

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"brandpulse/internal/domain/social"
)

// ErrNoData indicates the collector produced no posts for a brand.
var ErrNoData = errors.New("no social data available")

// Fallback insight lists used when the generator fails or comes back
// empty. The aggregation result is never lost because insight
// generation failed.
var (
	insightsUnavailable = []string{"Unable to generate AI insights at this time."}
	insightsEmpty       = []string{"No AI insights available at this time."}
)

// ServiceConfig contains configuration for the listening service.
type ServiceConfig struct {
	EventsTopic string
}

// Service orchestrates a brand search: collect posts, aggregate
// metrics, generate insights, and publish the completed search for
// asynchronous consumers.
type Service struct {
	collector social.Collector
	insights  social.InsightGenerator
	eventBus  *nats.Conn
	config    ServiceConfig
	logger    logrus.FieldLogger
}

// NewService creates a new listening service. The event bus may be nil,
// in which case completed searches are not published. The insight
// generator may be nil, in which case searches carry the fixed
// fallback text instead of AI insights.
func NewService(
	collector social.Collector,
	insights social.InsightGenerator,
	eventBus *nats.Conn,
	config ServiceConfig,
	logger logrus.FieldLogger,
) *Service {
	return &Service{
		collector: collector,
		insights:  insights,
		eventBus:  eventBus,
		config:    config,
		logger:    logger,
	}
}

// Search runs a full brand search. The snapshot is fully computed and
// immutable before any downstream call is made, so a failure in insight
// generation or event publishing never invalidates the aggregation.
func (s *Service) Search(ctx context.Context, brand string) (*social.SearchResult, error) {
	s.logger.WithField("brand", brand).Info("Processing search request")

	posts, err := s.collector.Collect(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("collecting data for %q: %w", brand, err)
	}
	if len(posts) == 0 {
		return nil, ErrNoData
	}

	snapshot, err := Aggregate(posts)
	if err != nil {
		return nil, fmt.Errorf("aggregating metrics for %q: %w", brand, err)
	}

	result := &social.SearchResult{
		Metrics:  snapshot,
		Insights: s.generateInsights(ctx, brand, posts, snapshot),
	}

	s.publishSearchEvent(brand, result)

	return result, nil
}

// generateInsights calls the insight generator and degrades to fixed
// fallback text on failure. Retries happen inside the generator.
func (s *Service) generateInsights(ctx context.Context, brand string, posts []social.Post, snapshot social.Snapshot) []string {
	if s.insights == nil {
		return insightsUnavailable
	}

	insights, err := s.insights.GenerateInsights(ctx, brand, posts, snapshot)
	if err != nil {
		s.logger.WithField("brand", brand).WithError(err).Error("Error generating AI insights")
		return insightsUnavailable
	}
	if len(insights) == 0 {
		s.logger.WithField("brand", brand).Warn("No AI insights generated")
		return insightsEmpty
	}
	return insights
}

// publishSearchEvent publishes the completed search to the event bus.
// Publish failures are logged and never propagate to the requester.
func (s *Service) publishSearchEvent(brand string, result *social.SearchResult) {
	if s.eventBus == nil {
		return
	}

	event := social.SearchEvent{
		ID:          uuid.New().String(),
		Brand:       brand,
		Metrics:     result.Metrics,
		Insights:    result.Insights,
		CompletedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).Error("Error marshaling search event")
		return
	}

	if err := s.eventBus.Publish(s.config.EventsTopic, payload); err != nil {
		s.logger.WithError(err).Error("Error publishing search event")
	}
}
