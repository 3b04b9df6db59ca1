package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// This file implements the generative recommendation engine on top of the
// Gemini generateContent API. The engine is failure-safe by contract: a
// missing credential, a backend error or a malformed response all yield an
// empty suggestion list, never an error. The orchestrator treats an empty
// list as "AI path failed".

const maxSuggestions = 5

const recommendationPrompt = `You are a smart music DJ. Suggest 5 specific songs based on the following context:
- Weather: %s
- Mood: %s
- Language: %s
- Content Type: %s
- City/Location: %s

Return ONLY a list of 5 song titles with their artist names, separated by commas.
Do not number them. Do not add quotes.
Example: Song1 by Artist1, Song2 by Artist2, Song3 by Artist3`

type Recommender interface {
	Recommend(ctx context.Context, rc RecommendationContext) []string
}

// GeminiRecommender calls the Gemini generative-language API over plain
// HTTP. generateURL points at the generateContent endpoint of the chosen
// model; tests override it with an httptest server.
type GeminiRecommender struct {
	apiKey      string
	generateURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

func NewGeminiRecommender(apiKey, generateURL string, httpClient *http.Client, logger *slog.Logger) *GeminiRecommender {
	return &GeminiRecommender{
		apiKey:      apiKey,
		generateURL: generateURL,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Recommend returns up to 5 "Title by Artist" suggestions for the given
// context, or an empty slice on any failure.
func (r *GeminiRecommender) Recommend(ctx context.Context, rc RecommendationContext) []string {
	if r.apiKey == "" {
		r.logger.Info("recommendation credential missing, skipping AI suggestions")
		return nil
	}

	text, err := r.generate(ctx, buildPrompt(rc))
	if err != nil {
		r.logger.Warn("recommendation backend error", "error", err)
		return nil
	}

	return parseSuggestions(text)
}

func buildPrompt(rc RecommendationContext) string {
	weatherDesc := "unknown"
	if rc.Weather != nil {
		weatherDesc = rc.Weather.Description
	}
	return fmt.Sprintf(recommendationPrompt, weatherDesc, rc.Mood, rc.Language, rc.ContentType, rc.City)
}

// parseSuggestions splits the raw model output on commas, trims each piece
// and keeps at most maxSuggestions non-empty entries. Text with no commas
// counts as a single suggestion. The result is never padded.
func parseSuggestions(text string) []string {
	var suggestions []string
	for _, piece := range strings.Split(text, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		suggestions = append(suggestions, piece)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func (r *GeminiRecommender) generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	reqURL := r.generateURL + "?key=" + url.QueryEscape(r.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("generate request returned status %d: %s", resp.StatusCode, string(body))
	}

	var data struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate response contains no candidates")
	}
	return data.Candidates[0].Content.Parts[0].Text, nil
}
