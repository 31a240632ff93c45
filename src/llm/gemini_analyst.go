package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"index-observer/src/analysis/core"
	"index-observer/src/helpers"
	"index-observer/src/logger"
	"index-observer/src/models"

	"google.golang.org/genai"
)

const analysisPrompt = `You are a financial expert AI designed to analyze market index data and predict future trends.
Below is the historical closing data for %s over the last %d points:

%s

Please analyze this data and provide:
1. A detailed analysis of the index's recent performance, including trends, volatility, and key patterns.
2. A prediction for the index's movement over the next 30 days, including potential high and low points.
3. Any recommendations for investors (e.g., buy, sell, hold) based on your analysis.

Ensure your response is in plain text format. Do not use any Markdown syntax (e.g., avoid using #, ##, **, etc.).`

// PricePoint is one entry of the history handed to the model.
type PricePoint struct {
	Date       string  `json:"date"`
	ClosePrice float64 `json:"closePrice"`
}

// generator is the slice of *genai.Models the analyst needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyst implements interfaces.IAnalyst with the Gemini API.
type GeminiAnalyst struct {
	Logger        *logger.Logger
	Model         string
	Timeout       time.Duration
	HistoryPoints int
	models        generator
}

// -----------------------------------------------------------------------------

func NewGeminiAnalyst(ctx context.Context, cfg models.MAnalysisConfig, timeout time.Duration, log *logger.Logger) (*GeminiAnalyst, error) {
	if cfg.APIKey == "" {
		return nil, helpers.NewConfigurationError("Gemini API key is required for analysis", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, helpers.NewConfigurationError("failed to initialize genai client", err)
	}

	return newAnalyst(client.Models, cfg, timeout, log), nil
}

func newAnalyst(g generator, cfg models.MAnalysisConfig, timeout time.Duration, log *logger.Logger) *GeminiAnalyst {
	points := cfg.HistoryPoints
	if points <= 0 {
		points = 30
	}
	return &GeminiAnalyst{
		Logger:        log,
		Model:         cfg.Model,
		Timeout:       timeout,
		HistoryPoints: points,
		models:        g,
	}
}

// -----------------------------------------------------------------------------

// Analyze asks the model to read the most recent points of indexName and
// returns its answer as plain text.
func (a *GeminiAnalyst) Analyze(ctx context.Context, indexName string, points []models.MBucket) (string, error) {
	if len(points) == 0 {
		return "", helpers.NewValidationError("no data to analyze for "+indexName, nil)
	}

	prompt, err := BuildPrompt(indexName, History(points, a.HistoryPoints))
	if err != nil {
		return "", helpers.NewAnalysisError("failed to build prompt", err)
	}

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.models.GenerateContent(ctx, a.Model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.4)),
	})
	if err != nil {
		return "", helpers.NewAnalysisError(fmt.Sprintf("%s analysis failed (model: %s)", indexName, a.Model), err)
	}

	text := resp.Text()
	if text == "" {
		return "", helpers.NewAnalysisError("empty response from model "+a.Model, nil)
	}

	a.Logger.Info("Analysis of %s done in %v", indexName, time.Since(start))
	return StripMarkdown(text), nil
}

// -----------------------------------------------------------------------------

// History keeps the last n points as date/close pairs.
func History(points []models.MBucket, n int) []PricePoint {
	if n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}

	out := make([]PricePoint, len(points))
	for i, p := range points {
		date := "Invalid Date"
		if !p.Date.IsZero() {
			date = p.Date.Format("2006-01-02")
		}
		out[i] = PricePoint{Date: date, ClosePrice: core.Round2(p.Close)}
	}
	return out
}

// -----------------------------------------------------------------------------

func BuildPrompt(indexName string, history []PricePoint) (string, error) {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(analysisPrompt, indexName, len(history), data), nil
}

// -----------------------------------------------------------------------------

var (
	reHeading = regexp.MustCompile(`#{1,6}\s*`)
	reTicks   = regexp.MustCompile("`{1,3}")
	reLink    = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
)

// StripMarkdown removes headings, emphasis, code ticks and link targets the
// model adds despite being asked for plain text.
func StripMarkdown(text string) string {
	text = reHeading.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "*", "")
	text = reTicks.ReplaceAllString(text, "")
	text = reLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
