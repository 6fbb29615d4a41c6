// Package discovery finds FindBugs reports in the conventional output
// locations of Java build tools.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/fbreport/internal/collector"
)

// GlobFunc matches the signature of filepath.Glob.
type GlobFunc func(pattern string) ([]string, error)

// ReadFileFunc matches the signature of os.ReadFile.
type ReadFileFunc func(name string) ([]byte, error)

// StatFunc matches the signature of os.Stat.
type StatFunc func(name string) (os.FileInfo, error)

// Discoverer probes a project tree for bug reports. Injectable deps make
// it fully testable.
type Discoverer struct {
	glob     GlobFunc
	readFile ReadFileFunc
	stat     StatFunc
}

// New creates a Discoverer with the given dependency functions.
func New(glob GlobFunc, readFile ReadFileFunc, stat StatFunc) *Discoverer {
	return &Discoverer{
		glob:     glob,
		readFile: readFile,
		stat:     stat,
	}
}

// Default creates a Discoverer backed by the local filesystem.
func Default() *Discoverer {
	return New(filepath.Glob, os.ReadFile, os.Stat)
}

// ReportDiscovery describes one candidate report file.
type ReportDiscovery struct {
	Build    BuildTool `json:"build"`
	Path     string    `json:"path"`
	Valid    bool      `json:"valid"`
	XrefPath string    `json:"xref_path,omitempty"`
}

// BuildDiscovery tracks whether a build tool's marker file exists.
type BuildDiscovery struct {
	Build  BuildTool `json:"build"`
	Marker string    `json:"marker"`
	Exists bool      `json:"exists"`
}

// DiscoveryPlan is the complete result of a discovery scan.
type DiscoveryPlan struct {
	Root       string            `json:"root"`
	Builds     []BuildDiscovery  `json:"builds"`
	Reports    []ReportDiscovery `json:"reports"`
	TotalFound int               `json:"total_found"`
	TotalValid int               `json:"total_valid"`
}

// Discover checks the conventional report locations of every build tool
// below root. A file is valid when it parses as a bug report. Nothing is
// read outside the registry patterns.
func (d *Discoverer) Discover(root string) *DiscoveryPlan {
	plan := &DiscoveryPlan{Root: root}
	seen := make(map[string]bool)

	for _, build := range sortedBuilds() {
		info := Registry[build]

		marker := filepath.Join(root, info.Marker)
		plan.Builds = append(plan.Builds, BuildDiscovery{
			Build:  build,
			Marker: info.Marker,
			Exists: d.isFile(marker),
		})

		xref := d.firstDir(root, info.Xref)

		for _, pattern := range info.Reports {
			matches, err := d.glob(filepath.Join(root, pattern))
			if err != nil {
				continue
			}
			sort.Strings(matches)

			for _, path := range matches {
				if seen[path] || !d.isFile(path) {
					continue
				}
				seen[path] = true

				rd := ReportDiscovery{Build: build, Path: path, XrefPath: xref}
				if data, err := d.readFile(path); err == nil {
					rd.Valid = collector.IsBugReport(data)
				}

				plan.Reports = append(plan.Reports, rd)
				plan.TotalFound++
				if rd.Valid {
					plan.TotalValid++
				}
			}
		}
	}

	return plan
}

// ValidReports returns the paths of the reports that can be rendered.
func (p *DiscoveryPlan) ValidReports() []string {
	var paths []string
	for _, r := range p.Reports {
		if r.Valid {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// sortedBuilds returns the registry keys in name order.
func sortedBuilds() []BuildTool {
	builds := make([]BuildTool, 0, len(Registry))
	for b := range Registry {
		builds = append(builds, b)
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i] < builds[j] })
	return builds
}

// firstDir returns the first existing directory of candidates below root.
func (d *Discoverer) firstDir(root string, candidates []string) string {
	for _, c := range candidates {
		path := filepath.Join(root, c)
		if info, err := d.stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// isFile checks if a file exists (not a directory).
func (d *Discoverer) isFile(path string) bool {
	info, err := d.stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
