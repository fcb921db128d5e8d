package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

// Load reads a .env file into the process environment. A missing file is
// not an error; in containers the variables come from the runtime.
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type LogConfig interface {
	Level() zapcore.Level
}

type ProviderKind string

const (
	ProviderNone      ProviderKind = "none"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderOpenAI    ProviderKind = "openai"
)

type ProviderConfig interface {
	Kind() ProviderKind
	APIKey() string
	Model() string
	BaseURL() string
}

type WheelConfig interface {
	Layout() wheel.Layout
	Duration() time.Duration
	FrameInterval() time.Duration
}
