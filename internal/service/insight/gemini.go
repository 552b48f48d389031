// internal/service/insight/gemini.go

package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/sirupsen/logrus"

	"brandpulse/internal/domain/social"
)

// RetryConfig bounds the retry behavior for transient Gemini failures.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig matches the documented policy: three attempts with
// exponential backoff between 4 and 10 seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   4 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// GeminiConfig contains configuration for the Gemini client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
}

// GeminiService generates narrative insights from a metrics snapshot
// using the Gemini generative-language API. It only summarizes the
// snapshot it is given; it never recomputes metrics from raw posts.
type GeminiService struct {
	config   GeminiConfig
	client   *http.Client
	executor failsafe.Executor[[]string]
	logger   logrus.FieldLogger
}

// NewGeminiService creates a new Gemini insight generator.
func NewGeminiService(config GeminiConfig, logger logrus.FieldLogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini API key is not set")
	}
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Retry.MaxAttempts <= 0 {
		config.Retry = DefaultRetryConfig()
	}

	retry := retrypolicy.NewBuilder[[]string]().
		WithBackoff(config.Retry.BaseDelay, config.Retry.MaxDelay).
		WithMaxRetries(config.Retry.MaxAttempts - 1).
		WithJitterFactor(0.1).
		Build()

	return &GeminiService{
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
		executor: failsafe.With(retry),
		logger:   logger,
	}, nil
}

// GenerateInsights asks Gemini for insights about the snapshot,
// retrying transient failures per the configured policy.
func (g *GeminiService) GenerateInsights(ctx context.Context, brand string, posts []social.Post, snapshot social.Snapshot) ([]string, error) {
	prompt := buildPrompt(brand, snapshot)

	insights, err := g.executor.WithContext(ctx).Get(func() ([]string, error) {
		return g.complete(ctx, prompt)
	})
	if err != nil {
		return nil, fmt.Errorf("generating insights for %q: %w", brand, err)
	}

	g.logger.WithField("brand", brand).Info("Generated AI insights")
	return insights, nil
}

// complete performs one generateContent call and parses the response.
func (g *GeminiService) complete(ctx context.Context, prompt string) ([]string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		SafetySettings: defaultSafetySettings(),
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(g.config.BaseURL, "/"), g.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	text := decoded.text()
	if text == "" {
		return nil, errors.New("gemini returned no content")
	}

	return parseInsights(text), nil
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings,omitempty"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// text concatenates the parts of the first candidate.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

func defaultSafetySettings() []geminiSafetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}

	settings := make([]geminiSafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, geminiSafetySetting{
			Category:  category,
			Threshold: "BLOCK_MEDIUM_AND_ABOVE",
		})
	}
	return settings
}
