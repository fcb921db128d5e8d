package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/DoyleJ11/spin-wheel/internal/config"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

const (
	wheelConfigEnvName   = "WHEEL_CONFIG"
	defaultFrameInterval = 16 * time.Millisecond
)

// WheelFile is the YAML layout of WHEEL_CONFIG. Zero fields keep their
// defaults.
type WheelFile struct {
	Layout        string        `yaml:"layout"`
	Duration      time.Duration `yaml:"duration"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	Reel          struct {
		SlotSize  float64 `yaml:"slot_size"`
		MinTravel float64 `yaml:"min_travel"`
		MaxTravel float64 `yaml:"max_travel"`
	} `yaml:"reel"`
	Pie struct {
		MinCycles int `yaml:"min_cycles"`
		MaxCycles int `yaml:"max_cycles"`
	} `yaml:"pie"`
}

type wheelConfig struct {
	layout        wheel.Layout
	duration      time.Duration
	frameInterval time.Duration
}

// NewWheelConfig reads WHEEL_CONFIG if it is set and uses the default reel
// otherwise.
func NewWheelConfig() (config.WheelConfig, error) {
	path := os.Getenv(wheelConfigEnvName)
	if len(path) == 0 {
		return &wheelConfig{
			layout:        wheel.DefaultReel(),
			duration:      wheel.DefaultDuration,
			frameInterval: defaultFrameInterval,
		}, nil
	}
	return NewWheelConfigFromYAML(path)
}

func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}
	var f WheelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse wheel config %s: %w", path, err)
	}
	return f.Build()
}

// Build validates the file and reports every problem at once.
func (f WheelFile) Build() (config.WheelConfig, error) {
	kind := wheel.KindReel
	if f.Layout != "" {
		k, err := wheel.ParseKind(f.Layout)
		if err != nil {
			return nil, err
		}
		kind = k
	}

	var errs error
	if f.Duration < 0 {
		errs = multierr.Append(errs, errors.New("duration must not be negative"))
	}
	if f.FrameInterval < 0 {
		errs = multierr.Append(errs, errors.New("frame_interval must not be negative"))
	}
	if f.Width < 0 || f.Height < 0 {
		errs = multierr.Append(errs, errors.New("width and height must not be negative"))
	}

	cfg := &wheelConfig{duration: f.Duration, frameInterval: f.FrameInterval}
	if cfg.duration == 0 {
		cfg.duration = wheel.DefaultDuration
	}
	if cfg.frameInterval == 0 {
		cfg.frameInterval = defaultFrameInterval
	}

	switch kind {
	case wheel.KindPie:
		p := wheel.DefaultPie()
		setIfPositive(&p.Width, f.Width)
		setIfPositive(&p.Height, f.Height)
		if f.Pie.MinCycles > 0 {
			p.MinCycles = f.Pie.MinCycles
		}
		if f.Pie.MaxCycles > 0 {
			p.MaxCycles = f.Pie.MaxCycles
		}
		if f.Pie.MinCycles < 0 || f.Pie.MaxCycles < 0 {
			errs = multierr.Append(errs, errors.New("pie cycles must not be negative"))
		}
		if p.MaxCycles < p.MinCycles {
			errs = multierr.Append(errs, fmt.Errorf("pie max_cycles %d below min_cycles %d", p.MaxCycles, p.MinCycles))
		}
		cfg.layout = p
	default:
		r := wheel.DefaultReel()
		setIfPositive(&r.Width, f.Width)
		setIfPositive(&r.Height, f.Height)
		setIfPositive(&r.SlotSize, f.Reel.SlotSize)
		setIfPositive(&r.MinTravel, f.Reel.MinTravel)
		setIfPositive(&r.MaxTravel, f.Reel.MaxTravel)
		if f.Reel.SlotSize < 0 || f.Reel.MinTravel < 0 || f.Reel.MaxTravel < 0 {
			errs = multierr.Append(errs, errors.New("reel sizes must not be negative"))
		}
		if r.MaxTravel < r.MinTravel {
			errs = multierr.Append(errs, fmt.Errorf("reel max_travel %v below min_travel %v", r.MaxTravel, r.MinTravel))
		}
		cfg.layout = r
	}

	if errs != nil {
		return nil, fmt.Errorf("invalid wheel config: %w", errs)
	}
	return cfg, nil
}

func setIfPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func (cfg *wheelConfig) Layout() wheel.Layout         { return cfg.layout }
func (cfg *wheelConfig) Duration() time.Duration      { return cfg.duration }
func (cfg *wheelConfig) FrameInterval() time.Duration { return cfg.frameInterval }
