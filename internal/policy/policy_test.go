package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/testkit"
)

func intPtr(v int) *int { return &v }

func baseRows() []aggregator.Row {
	return aggregator.Flatten(aggregator.Build(testkit.Sample()))
}

func TestEvaluateNilPolicy(t *testing.T) {
	var p *Policy
	result := p.Evaluate(baseRows())
	if !result.Pass {
		t.Error("nil policy should pass")
	}
}

func TestMaxBugsPass(t *testing.T) {
	p := &Policy{Rules: Rules{MaxBugs: intPtr(4)}}
	result := p.Evaluate(baseRows())
	if !result.Pass {
		t.Errorf("expected pass, got violations: %v", result.Violations)
	}
}

func TestMaxBugsFail(t *testing.T) {
	p := &Policy{Rules: Rules{MaxBugs: intPtr(3)}}
	result := p.Evaluate(baseRows())
	if result.Pass {
		t.Error("expected fail: 4 bugs exceeds limit 3")
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "max_bugs" {
		t.Errorf("expected max_bugs violation, got %v", result.Violations)
	}
	if result.Violations[0].Message != "total bugs 4 exceeds limit 3" {
		t.Errorf("unexpected message: %s", result.Violations[0].Message)
	}
}

func TestMaxHigh(t *testing.T) {
	pass := &Policy{Rules: Rules{MaxHigh: intPtr(1)}}
	if result := pass.Evaluate(baseRows()); !result.Pass {
		t.Errorf("expected pass, got violations: %v", result.Violations)
	}

	fail := &Policy{Rules: Rules{MaxHigh: intPtr(0)}}
	result := fail.Evaluate(baseRows())
	if result.Pass {
		t.Error("expected fail: 1 high exceeds limit 0")
	}
	if result.Violations[0].Rule != "max_high" {
		t.Errorf("expected max_high, got %s", result.Violations[0].Rule)
	}
}

func TestMaxMedium(t *testing.T) {
	pass := &Policy{Rules: Rules{MaxMedium: intPtr(2)}}
	if result := pass.Evaluate(baseRows()); !result.Pass {
		t.Errorf("expected pass, got violations: %v", result.Violations)
	}

	fail := &Policy{Rules: Rules{MaxMedium: intPtr(1)}}
	result := fail.Evaluate(baseRows())
	if result.Pass {
		t.Error("expected fail: 2 medium exceeds limit 1")
	}
	if result.Violations[0].Rule != "max_medium" {
		t.Errorf("expected max_medium, got %s", result.Violations[0].Rule)
	}
}

func TestForbidCategories(t *testing.T) {
	tests := []struct {
		name      string
		forbidden []string
		pass      bool
		message   string
	}{
		{"by code", []string{"PERFORMANCE"}, false, `forbidden category "PERFORMANCE" has 2 bugs`},
		{"by description", []string{"Correctness"}, false, `forbidden category "CORRECTNESS" has 2 bugs`},
		{"category without bugs", []string{"STYLE"}, true, ""},
		{"unknown category", []string{"SECURITY"}, true, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := &Policy{Rules: Rules{ForbidCategories: tt.forbidden}}
			result := p.Evaluate(baseRows())
			if result.Pass != tt.pass {
				t.Fatalf("expected pass=%v, got violations: %v", tt.pass, result.Violations)
			}
			if !tt.pass && result.Violations[0].Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, result.Violations[0].Message)
			}
		})
	}
}

func TestForbidPatterns(t *testing.T) {
	p := &Policy{Rules: Rules{ForbidPatterns: []string{"NP_NULL_ON_SOME_PATH", "UC_USELESS_CONDITION"}}}
	result := p.Evaluate(baseRows())
	if result.Pass {
		t.Fatal("expected fail: NP_NULL_ON_SOME_PATH is forbidden")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", result.Violations)
	}
	if result.Violations[0].Rule != "forbid_patterns" {
		t.Errorf("expected forbid_patterns, got %s", result.Violations[0].Rule)
	}
}

func TestMultipleViolationsAreOrdered(t *testing.T) {
	p := &Policy{
		Rules: Rules{
			MaxBugs:          intPtr(0),
			MaxHigh:          intPtr(0),
			ForbidCategories: []string{"PERFORMANCE", "CORRECTNESS"},
		},
	}
	result := p.Evaluate(baseRows())
	if result.Pass {
		t.Error("expected fail")
	}

	var rules []string
	for _, v := range result.Violations {
		rules = append(rules, v.Rule)
	}
	want := []string{"max_bugs", "max_high", "forbid_categories", "forbid_categories"}
	if len(rules) != len(want) {
		t.Fatalf("expected %v, got %v", want, rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, rules)
		}
	}
	if result.Violations[2].Message != `forbidden category "CORRECTNESS" has 2 bugs` {
		t.Errorf("categories should be reported in order, got %q", result.Violations[2].Message)
	}
}

func TestEvaluateEmptyReport(t *testing.T) {
	p := &Policy{Rules: Rules{MaxBugs: intPtr(0), MaxHigh: intPtr(0), ForbidPatterns: []string{"X"}}}
	result := p.Evaluate(nil)
	if !result.Pass {
		t.Errorf("empty report should pass, got %v", result.Violations)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fbreport-policy.yaml")

	content := `version: "1"
rules:
  max_bugs: 10
  max_high: 0
  max_medium: 5
  forbid_categories:
    - CORRECTNESS
  forbid_patterns:
    - DM_STRING_CTOR
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if p == nil {
		t.Fatal("expected policy, got nil")
	}
	if p.Version != "1" {
		t.Errorf("expected version 1, got %s", p.Version)
	}
	if p.Rules.MaxBugs == nil || *p.Rules.MaxBugs != 10 {
		t.Errorf("expected max_bugs 10, got %v", p.Rules.MaxBugs)
	}
	if p.Rules.MaxMedium == nil || *p.Rules.MaxMedium != 5 {
		t.Errorf("expected max_medium 5, got %v", p.Rules.MaxMedium)
	}
	if len(p.Rules.ForbidCategories) != 1 || p.Rules.ForbidCategories[0] != "CORRECTNESS" {
		t.Errorf("expected forbid CORRECTNESS, got %v", p.Rules.ForbidCategories)
	}
	if len(p.Rules.ForbidPatterns) != 1 || p.Rules.ForbidPatterns[0] != "DM_STRING_CTOR" {
		t.Errorf("expected forbid DM_STRING_CTOR, got %v", p.Rules.ForbidPatterns)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	p, err := LoadFromFile("/nonexistent/path")
	if err != nil {
		t.Errorf("expected nil error for missing file, got %v", err)
	}
	if p != nil {
		t.Error("expected nil policy for missing file")
	}
}

func TestLoadFromFileBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fbreport-policy.yaml")
	if err := os.WriteFile(path, []byte("rules: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindPolicyFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ".fbreport-policy.yml")
	if err := os.WriteFile(path, []byte("rules: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := FindPolicyFile(nested); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}
