package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"gopkg.in/yaml.v3"
)

// FileNames are the policy file names searched by FindPolicyFile
var FileNames = []string{".fbreport-policy.yaml", ".fbreport-policy.yml"}

// Policy defines enforcement rules for a bug report.
type Policy struct {
	Version string `yaml:"version"`
	Rules   Rules  `yaml:"rules"`
}

// Rules contains all configurable policy rules.
type Rules struct {
	MaxBugs   *int `yaml:"max_bugs,omitempty"`
	MaxHigh   *int `yaml:"max_high,omitempty"`
	MaxMedium *int `yaml:"max_medium,omitempty"`
	// ForbidCategories match a category code or its description.
	ForbidCategories []string `yaml:"forbid_categories,omitempty"`
	// ForbidPatterns match bug pattern type codes.
	ForbidPatterns []string `yaml:"forbid_patterns,omitempty"`
}

// Violation is a single policy failure.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result holds the outcome of a policy check.
type Result struct {
	Pass       bool        `json:"pass"`
	Violations []Violation `json:"violations"`
}

// LoadFromFile reads a policy file. A missing file yields a nil policy.
func LoadFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	return &p, nil
}

// FindPolicyFile searches for a policy file in dir and its parents up to
// the filesystem root.
func FindPolicyFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Evaluate checks flattened bug rows against the policy rules.
func (p *Policy) Evaluate(rows []aggregator.Row) *Result {
	if p == nil {
		return &Result{Pass: true}
	}

	var violations []Violation
	bySeverity := aggregator.CountBySeverity(rows)

	// max_bugs
	if p.Rules.MaxBugs != nil && len(rows) > *p.Rules.MaxBugs {
		violations = append(violations, Violation{
			Rule:    "max_bugs",
			Message: fmt.Sprintf("total bugs %d exceeds limit %d", len(rows), *p.Rules.MaxBugs),
		})
	}

	// max_high
	if p.Rules.MaxHigh != nil {
		count := bySeverity[aggregator.SeverityHigh]
		if count > *p.Rules.MaxHigh {
			violations = append(violations, Violation{
				Rule:    "max_high",
				Message: fmt.Sprintf("high priority bugs %d exceeds limit %d", count, *p.Rules.MaxHigh),
			})
		}
	}

	// max_medium
	if p.Rules.MaxMedium != nil {
		count := bySeverity[aggregator.SeverityMedium]
		if count > *p.Rules.MaxMedium {
			violations = append(violations, Violation{
				Rule:    "max_medium",
				Message: fmt.Sprintf("medium priority bugs %d exceeds limit %d", count, *p.Rules.MaxMedium),
			})
		}
	}

	// forbid_categories
	if len(p.Rules.ForbidCategories) > 0 {
		forbidden := toSet(p.Rules.ForbidCategories)
		counts := map[string]int{}
		for _, r := range rows {
			if forbidden[r.CategoryRaw] || forbidden[r.Category] {
				counts[r.CategoryRaw]++
			}
		}
		for _, code := range sortedKeys(counts) {
			violations = append(violations, Violation{
				Rule:    "forbid_categories",
				Message: fmt.Sprintf("forbidden category %q has %d bugs", code, counts[code]),
			})
		}
	}

	// forbid_patterns
	if len(p.Rules.ForbidPatterns) > 0 {
		forbidden := toSet(p.Rules.ForbidPatterns)
		counts := map[string]int{}
		for _, r := range rows {
			if forbidden[r.Type] {
				counts[r.Type]++
			}
		}
		for _, typ := range sortedKeys(counts) {
			violations = append(violations, Violation{
				Rule:    "forbid_patterns",
				Message: fmt.Sprintf("forbidden bug pattern %q has %d bugs", typ, counts[typ]),
			})
		}
	}

	return &Result{
		Pass:       len(violations) == 0,
		Violations: violations,
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
