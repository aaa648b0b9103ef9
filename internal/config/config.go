// Package config reads doccrop settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/doccrop-mcp/internal/batch"
	"github.com/ironsheep/doccrop-mcp/internal/identify"
)

// Environment variables.
const (
	EnvWorkingSize          = "DOCCROP_WORKING_SIZE"
	EnvMaxRetries           = "DOCCROP_MAX_RETRIES"
	EnvLineIterations       = "DOCCROP_LINE_ITERATIONS"
	EnvLineThresholdHigh    = "DOCCROP_LINE_THRESHOLD_HIGH"
	EnvLineThresholdLow     = "DOCCROP_LINE_THRESHOLD_LOW"
	EnvColorThreshold       = "DOCCROP_COLOR_THRESHOLD"
	EnvNoisyLines           = "DOCCROP_NOISY_LINES"
	EnvMinIntersectionRatio = "DOCCROP_MIN_INTERSECTION_RATIO"
	EnvPaddingWidth         = "DOCCROP_PADDING_WIDTH"
	EnvPaddingHeight        = "DOCCROP_PADDING_HEIGHT"
	EnvDocumentType         = "DOCCROP_DOCUMENT_TYPE"
	EnvDocumentBehavior     = "DOCCROP_DOCUMENT_BEHAVIOR"
	EnvLogLevel             = "DOCCROP_LOG_LEVEL"
	EnvMetricsAddr          = "DOCCROP_METRICS_ADDR"
	EnvOCRLanguage          = "DOCCROP_OCR_LANGUAGE"
)

// Config holds everything the binary needs.
type Config struct {
	Identify identify.Settings
	Batch    batch.Settings

	LogLevel logrus.Level

	// MetricsAddr enables the metrics endpoint when not empty.
	MetricsAddr string

	OCRLanguage string
}

// Load reads the given .env files, or .env in the working directory when
// none are given, then the environment. Missing files are ignored; invalid
// values are not.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Identify:    identify.DefaultSettings(),
		Batch:       batch.DefaultSettings(),
		LogLevel:    logrus.InfoLevel,
		MetricsAddr: os.Getenv(EnvMetricsAddr),
		OCRLanguage: "eng",
	}

	p := parser{}
	p.int(EnvWorkingSize, &cfg.Identify.WorkingSize)
	p.int(EnvMaxRetries, &cfg.Identify.MaxRetries)
	p.int(EnvLineIterations, &cfg.Identify.LineIterations)
	p.float(EnvLineThresholdHigh, &cfg.Identify.LineThresholdHigh)
	p.float(EnvLineThresholdLow, &cfg.Identify.LineThresholdLow)
	p.int(EnvColorThreshold, &cfg.Identify.ColorThreshold)
	p.int(EnvNoisyLines, &cfg.Identify.NoisyLines)
	p.float(EnvMinIntersectionRatio, &cfg.Identify.MinIntersectionRatio)
	p.int(EnvPaddingWidth, &cfg.Batch.PaddingWidth)
	p.int(EnvPaddingHeight, &cfg.Batch.PaddingHeight)
	if p.err != nil {
		return nil, p.err
	}

	var err error
	if v, ok := os.LookupEnv(EnvDocumentType); ok {
		if cfg.Batch.Type, err = batch.ParseDocumentType(v); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvDocumentType, err)
		}
	}
	if v, ok := os.LookupEnv(EnvDocumentBehavior); ok {
		if cfg.Batch.Behavior, err = batch.ParseBehavior(v); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvDocumentBehavior, err)
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if cfg.LogLevel, err = logrus.ParseLevel(v); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v := os.Getenv(EnvOCRLanguage); v != "" {
		cfg.OCRLanguage = v
	}

	cfg.Identify.PaddingWidth = cfg.Batch.PaddingWidth
	cfg.Identify.PaddingHeight = cfg.Batch.PaddingHeight
	if err := cfg.Identify.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IdentifyOptions returns the options that apply the identifier settings.
func (c *Config) IdentifyOptions() []identify.Option {
	return []identify.Option{
		identify.WithSettings(c.Identify),
		identify.WithPadding(c.Identify.PaddingWidth, c.Identify.PaddingHeight),
	}
}

// parser keeps the first error so callers check once.
type parser struct {
	err error
}

func (p *parser) int(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" || p.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("%s: invalid integer %q", key, v)
		return
	}
	*dst = n
}

func (p *parser) float(key string, dst *float64) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" || p.err != nil {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: invalid number %q", key, v)
		return
	}
	*dst = f
}
