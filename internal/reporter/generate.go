package reporter

import (
	"errors"
	"fmt"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/collector"
	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/sink"
	"github.com/ppiankov/fbreport/internal/validator"
	"go.uber.org/zap"
)

// ErrGenerationFailed wraps every failure of Generate
var ErrGenerationFailed = errors.New("report generation failed")

// GenerateConfig controls a single report run
type GenerateConfig struct {
	Options

	// Source names the input in errors and log lines
	Source string

	// Lenient renders reports with unresolved references instead of
	// failing. Each problem is logged as a warning.
	Lenient bool

	Logger *zap.Logger
}

// Generate parses a raw bug report and emits it to s.
func Generate(data []byte, cfg GenerateConfig, s sink.Sink) error {
	bc, err := collector.Parse(data)
	if err != nil {
		var mre *collector.MalformedReportError
		if errors.As(err, &mre) {
			mre.Source = cfg.Source
		}
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return GenerateCollection(bc, cfg, s)
}

// GenerateCollection checks a loaded collection and emits it to s.
func GenerateCollection(bc *models.BugCollection, cfg GenerateConfig, s sink.Sink) error {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validator.New().Validate(bc); err != nil {
		var verr *validator.ValidationError
		if !errors.As(err, &verr) {
			return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
		verr.Source = cfg.Source

		if !cfg.Lenient {
			return fmt.Errorf("%w: %w", ErrGenerationFailed, verr)
		}
		for _, problem := range verr.Errors {
			logger.Warn("rendering report with unresolved reference",
				zap.String("source", cfg.Source),
				zap.String("problem", problem))
		}
	}

	idx := aggregator.Build(bc)
	logger.Debug("report indexed",
		zap.String("source", cfg.Source),
		zap.Int("packages_with_bugs", len(idx.PackagesWithBugs())),
		zap.Int("instances", len(bc.Instances)))

	if err := New(idx, cfg.Options).Emit(s); err != nil {
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return nil
}
