package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/fbreport/internal/models"
	"go.uber.org/zap"
)

// Config holds configuration for the collector
type Config struct {
	Logger *zap.Logger
}

// Collector loads bug reports from files and directories
type Collector struct {
	config Config
}

// Report is a loaded bug report together with the file it came from
type Report struct {
	Path       string
	Collection *models.BugCollection
}

// New creates a new collector with the given configuration
func New(config Config) *Collector {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Collector{
		config: config,
	}
}

// CollectFromPaths loads every report named by paths. Directories are
// scanned for bug report XML files. Any failure aborts the whole collection.
func (c *Collector) CollectFromPaths(paths []string) ([]Report, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		found, err := FindReports(p)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", p, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no bug reports found in directory: %s", p)
		}
		c.config.Logger.Debug("scanned directory", zap.String("dir", p), zap.Int("reports", len(found)))
		files = append(files, found...)
	}

	reports := make([]Report, 0, len(files))
	for _, f := range files {
		bc, err := c.LoadFile(f)
		if err != nil {
			return nil, err
		}
		c.config.Logger.Info("loaded bug report",
			zap.String("file", f),
			zap.String("version", bc.Version),
			zap.Int("instances", len(bc.Instances)))
		reports = append(reports, Report{Path: f, Collection: bc})
	}

	return reports, nil
}

// LoadFile reads and parses a single bug report file
func (c *Collector) LoadFile(path string) (*models.BugCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	bc, err := Parse(data)
	if err != nil {
		if mre, ok := err.(*MalformedReportError); ok {
			mre.Source = path
		}
		return nil, err
	}

	return bc, nil
}

// FindReports recursively finds bug report XML files below dir, in lexical
// order.
func FindReports(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-XML files
		if info.IsDir() || filepath.Ext(path) != ".xml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if IsBugReport(data) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
