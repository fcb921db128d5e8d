// Package options turns a user prompt into the labels of a wheel: a literal
// comma separated list, a built in static wheel, or a language model answer.
package options

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyPrompt         = errors.New("prompt cannot be empty")
	ErrNoOptions           = errors.New("no options generated")
	ErrProviderUnavailable = errors.New("no option provider configured")
	ErrGenerationFailed    = errors.New("failed to generate options")
)

// Provider asks a language model for a comma separated answer.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type Source string

const (
	SourceList     Source = "list"
	SourceStatic   Source = "static"
	SourceProvider Source = "provider"
)

type Generated struct {
	Options []string
	Source  Source
	WheelID string // static wheel id, SourceStatic only
}

type Service struct {
	catalog  *Catalog
	provider Provider
	logger   *zap.Logger
}

// NewService accepts a nil provider; prompts that need one then fail with
// ErrProviderUnavailable.
func NewService(catalog *Catalog, provider Provider, logger *zap.Logger) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, provider: provider, logger: logger.Named("options")}
}

func (s *Service) Generate(ctx context.Context, prompt string) (Generated, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Generated{}, ErrEmptyPrompt
	}

	if IsCommaList(prompt) {
		opts := ParseCommaList(prompt)
		s.logger.Debug("parsed comma separated list", zap.Int("count", len(opts)))
		if len(opts) == 0 {
			return Generated{}, ErrNoOptions
		}
		return Generated{Options: opts, Source: SourceList}, nil
	}

	if w, ok := s.catalog.Lookup(prompt); ok {
		s.logger.Info("using static wheel", zap.String("wheel", w.ID), zap.Int("count", len(w.Teams)))
		return Generated{Options: w.Labels(), Source: SourceStatic, WheelID: w.ID}, nil
	}

	if s.provider == nil {
		return Generated{}, ErrProviderUnavailable
	}

	s.logger.Info("calling provider", zap.String("provider", s.provider.Name()), zap.String("prompt", prompt))
	text, err := s.provider.Complete(ctx, BuildPrompt(prompt))
	if err != nil {
		return Generated{}, fmt.Errorf("%w: %s: %w", ErrGenerationFailed, s.provider.Name(), err)
	}
	cleaned := CleanResponse(text)
	s.logger.Debug("provider response", zap.String("raw", text), zap.String("cleaned", cleaned))

	opts := ParseCommaList(cleaned)
	if len(opts) == 0 {
		return Generated{}, ErrNoOptions
	}
	return Generated{Options: opts, Source: SourceProvider}, nil
}

// BuildPrompt wraps the user's request in the instructions that keep the
// answer to a bare comma separated list.
func BuildPrompt(request string) string {
	return fmt.Sprintf(`Generate a complete comma-separated list of ALL items for: %s.

WHEN TO USE WEB SEARCH:
- Only use web search if the request requires current/real-time information (e.g., "today's roster", "current menu", "restaurants at [specific location]")
- Do NOT use web search for static, well-known lists (e.g., "NBA teams", "NFL teams", "US states", "countries")

OUTPUT FORMAT - CRITICAL:
Your response must contain ONLY the comma-separated list. Do not include:
- Any explanatory text or preamble (like "Based on my search results" or "I found")
- No sentences or explanations
- No numbering
- No extra text before or after the list
- Just the comma-separated items only

Example format: Item One, Item Two, Item Three, Item Four

Return ONLY the comma-separated list.`, request)
}
