package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/fbreport/internal/collector"
	"github.com/ppiankov/fbreport/internal/config"
	"github.com/ppiankov/fbreport/internal/render"
	"github.com/ppiankov/fbreport/internal/reporter"
	"go.uber.org/zap"
)

// PipelineConfig holds options for the shared render pipeline.
type PipelineConfig struct {
	Format    string
	Output    string
	XrefPath  string
	Threshold string
	Effort    string
	Lenient   bool
	Terminal  render.TerminalOptions
}

// reportOptions validates threshold and effort and returns the options
// echoed into the report.
func (p PipelineConfig) reportOptions() (reporter.Options, error) {
	threshold, err := config.ValidateThreshold(p.Threshold)
	if err != nil {
		return reporter.Options{}, err
	}
	effort, err := config.ValidateEffort(p.Effort)
	if err != nil {
		return reporter.Options{}, err
	}
	return reporter.Options{
		Effort:    effort,
		Threshold: threshold,
		XrefPath:  p.XrefPath,
	}, nil
}

// RunPipeline renders every input named by paths:
// validate options → load → generate into a buffer → write.
// No output is written for a report that fails to generate.
func RunPipeline(paths []string, pcfg PipelineConfig, stdout io.Writer) error {
	// Step 1: Options are checked before any input is read
	opts, err := pcfg.reportOptions()
	if err != nil {
		return err
	}
	if !render.IsValidFormat(pcfg.Format) {
		return &config.Error{Key: "format", Value: pcfg.Format, Allowed: render.Formats}
	}

	// Step 2: Load reports
	reports, err := loadReports(paths)
	if err != nil {
		return err
	}

	// Step 3: Decide where each report goes
	targets, err := outputTargets(reports, pcfg.Output, pcfg.Format, len(paths))
	if err != nil {
		return err
	}

	// Step 4: Generate and write
	for i, r := range reports {
		var buf bytes.Buffer
		s, err := render.New(pcfg.Format, &buf, render.Options{Terminal: pcfg.Terminal})
		if err != nil {
			return err
		}

		err = reporter.GenerateCollection(r.Collection, reporter.GenerateConfig{
			Options: opts,
			Source:  r.Path,
			Lenient: pcfg.Lenient,
			Logger:  logger,
		}, s)
		if err != nil {
			return err
		}

		if err := writeOutput(targets[i], buf.Bytes(), stdout); err != nil {
			return err
		}
		if targets[i] != "" {
			logVerbose("Wrote %s report for %s to %s", pcfg.Format, r.Path, targets[i])
		}
	}

	return nil
}

// loadReports loads every report named by paths. Loader failures are
// reported as generation failures.
func loadReports(paths []string) ([]collector.Report, error) {
	l := logger
	if l == nil {
		l = zap.NewNop()
	}

	reports, err := collector.New(collector.Config{Logger: l}).CollectFromPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reporter.ErrGenerationFailed, err)
	}

	logVerbose("Loaded %d bug report(s)", len(reports))
	return reports, nil
}

// outputTargets returns the destination of each report; "" means stdout.
// Several reports, or an output path that is an existing directory, put
// one file per report into that directory.
func outputTargets(reports []collector.Report, output, format string, inputs int) ([]string, error) {
	targets := make([]string, len(reports))
	if output == "" {
		return targets, nil
	}

	dirMode := len(reports) > 1 || inputs > 1 || strings.HasSuffix(output, string(os.PathSeparator))
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		dirMode = true
	}

	if !dirMode {
		targets[0] = output
		return targets, nil
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]bool, len(reports))
	for i, r := range reports {
		name := outputBase(r.Path)
		if used[name] {
			name = filepath.Base(filepath.Dir(r.Path)) + "-" + name
		}
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", outputBase(r.Path), n)
		}
		used[name] = true
		targets[i] = filepath.Join(output, name+render.Extension(format))
	}

	return targets, nil
}

// outputBase is the input file name without its extension
func outputBase(path string) string {
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return reporter.OutputName
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
