package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/DoyleJ11/spin-wheel/internal/config"
)

const (
	providerEnvName       = "OPTIONS_PROVIDER"
	claudeKeyEnvName      = "CLAUDE_API_KEY"
	anthropicKeyEnvName   = "ANTHROPIC_API_KEY"
	anthropicModelEnvName = "ANTHROPIC_MODEL"
	openAIKeyEnvName      = "OPENAI_API_KEY"
	openAIBaseURLEnvName  = "OPENAI_BASE_URL"
	openAIModelEnvName    = "OPENAI_MODEL"
)

type providerConfig struct {
	kind    config.ProviderKind
	apiKey  string
	model   string
	baseURL string
}

// NewProviderConfig picks the option provider. With OPTIONS_PROVIDER unset
// the first provider with a key wins, Anthropic before OpenAI; with no key
// at all prompts that need a model are refused at request time.
func NewProviderConfig() (config.ProviderConfig, error) {
	anthropicKey := os.Getenv(claudeKeyEnvName)
	if len(anthropicKey) == 0 {
		anthropicKey = os.Getenv(anthropicKeyEnvName)
	}
	openAIKey := os.Getenv(openAIKeyEnvName)

	kind := config.ProviderKind(strings.ToLower(strings.TrimSpace(os.Getenv(providerEnvName))))
	if kind == "" {
		switch {
		case anthropicKey != "":
			kind = config.ProviderAnthropic
		case openAIKey != "":
			kind = config.ProviderOpenAI
		default:
			kind = config.ProviderNone
		}
	}

	switch kind {
	case config.ProviderNone:
		return &providerConfig{kind: kind}, nil
	case config.ProviderAnthropic:
		if anthropicKey == "" {
			return nil, fmt.Errorf("%s or %s not set", claudeKeyEnvName, anthropicKeyEnvName)
		}
		return &providerConfig{kind: kind, apiKey: anthropicKey, model: os.Getenv(anthropicModelEnvName)}, nil
	case config.ProviderOpenAI:
		if openAIKey == "" {
			return nil, fmt.Errorf("%s not set", openAIKeyEnvName)
		}
		return &providerConfig{
			kind:    kind,
			apiKey:  openAIKey,
			model:   os.Getenv(openAIModelEnvName),
			baseURL: os.Getenv(openAIBaseURLEnvName),
		}, nil
	default:
		return nil, fmt.Errorf("unknown %s %q", providerEnvName, kind)
	}
}

func (cfg *providerConfig) Kind() config.ProviderKind { return cfg.kind }
func (cfg *providerConfig) APIKey() string            { return cfg.apiKey }
func (cfg *providerConfig) Model() string             { return cfg.model }
func (cfg *providerConfig) BaseURL() string           { return cfg.baseURL }
