// Package llm runs the contest's language-model backends: one prompt asking
// for the week's ticker picks, one JSON answer parsed into a Pick. The
// aggregation side never branches on which provider produced a pick.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

// Request asks one backend for its picks for a week.
type Request struct {
	Model     string
	WeekStart date.Date
	MaxPicks  int
	Universe  []string
}

// Response is a backend's parsed answer: the tickers picked, with the parallel
// rationale and analysis-method labels.
type Response struct {
	Symbols []string
	Reasons []string
	Methods []string
}

// Client is one contest entrant.
type Client interface {
	// Name returns the contest-facing model label used in picks and results.
	Name() string
	// Generate asks the backend for its picks.
	Generate(ctx context.Context, req Request) (Response, error)
}

// New builds the client for one configured backend. The credential is checked
// here: a missing key fails fast, before any network call.
func New(mc llmbattle.ModelConfig) (Client, error) {
	apiKey := os.Getenv(mc.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("model %q: environment variable %s is not set", mc.Name, mc.APIKeyEnv)
	}
	switch mc.Provider {
	case "gemini":
		return newGemini(mc, apiKey), nil
	case "claude":
		return newClaude(mc, apiKey), nil
	case "openai", "azure-openai", "grok":
		return newOpenAI(mc, apiKey)
	default:
		return nil, fmt.Errorf("model %q: unknown provider %q", mc.Name, mc.Provider)
	}
}

// Outcome records how one backend's weekly run went. Failures are data, not
// aborts: one model's outage must not cost the others their picks.
type Outcome struct {
	Model string
	Pick  llmbattle.Pick
	Err   error
}

// GenerateAll asks every configured backend for its picks and collects one
// outcome per model. Backends whose credential is missing fail in their own
// outcome without being called.
func GenerateAll(ctx context.Context, configs []llmbattle.ModelConfig, weekStart date.Date, maxPicks int, universe []string, log zerolog.Logger) []Outcome {
	outcomes := make([]Outcome, 0, len(configs))
	for _, mc := range configs {
		outcome := Outcome{Model: mc.Name}

		client, err := New(mc)
		if err != nil {
			outcome.Err = err
			log.Error().Err(err).Str("model", mc.Name).Msg("backend unavailable")
			outcomes = append(outcomes, outcome)
			continue
		}

		req := Request{Model: mc.Model, WeekStart: weekStart, MaxPicks: maxPicks, Universe: universe}
		resp, err := client.Generate(ctx, req)
		if err != nil {
			outcome.Err = fmt.Errorf("model %q: %w", mc.Name, err)
			log.Error().Err(err).Str("model", mc.Name).Msg("generation failed")
			outcomes = append(outcomes, outcome)
			continue
		}

		pick := llmbattle.Pick{
			Model:    mc.Name,
			Symbols:  resp.Symbols,
			Reasons:  resp.Reasons,
			Methods:  resp.Methods,
			PickedAt: time.Now().UTC(),
		}
		if err := pick.Validate(); err != nil {
			outcome.Err = err
			log.Error().Err(err).Str("model", mc.Name).Msg("invalid pick")
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Pick = pick
		log.Info().Str("model", mc.Name).Strs("symbols", pick.Symbols).Msg("picks generated")
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
