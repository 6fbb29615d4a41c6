package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/ppiankov/fbreport/internal/aggregator"
	"github.com/ppiankov/fbreport/internal/policy"
	"github.com/ppiankov/fbreport/internal/reporter"
	"github.com/spf13/cobra"
)

var (
	checkPolicy  string
	checkTop     int
	checkJSON    bool
	checkMaxBugs int
)

var checkCmd = &cobra.Command{
	Use:   "check <report.xml>",
	Short: "Check a report against the bug policy",
	Long: `Check prints an overview of a FindBugs XML report and evaluates it
against a policy file. Without --policy, .fbreport-policy.yaml is searched
in the report directory and its parents.

Example policy:
  version: 1
  rules:
    max_bugs: 20
    max_high: 0
    forbid_categories: [CORRECTNESS]
    forbid_patterns: [NP_NULL_ON_SOME_PATH]

Returns exit 1 when the policy is violated.

Example:
  fbreport check findbugs.xml
  fbreport check findbugs.xml --policy ci/policy.yaml --json
  fbreport check findbugs.xml --max-bugs 10`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkPolicy, "policy", "",
		"policy file (default: search for .fbreport-policy.yaml)")
	checkCmd.Flags().IntVar(&checkTop, "top", 3,
		"number of recommended actions to show")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"print the report and policy result as JSON")
	checkCmd.Flags().IntVar(&checkMaxBugs, "max-bugs", -1,
		"fail when the report has more bugs (overrides policy max_bugs)")
}

// checkOutput is the document printed by check --json
type checkOutput struct {
	Report reporter.JSONReport `json:"report"`
	Policy *policy.Result      `json:"policy"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	return checkReport(args[0], os.Stdout)
}

func checkReport(path string, stdout io.Writer) error {
	opts, err := PipelineConfig{Threshold: cfg.Threshold, Effort: cfg.Effort}.reportOptions()
	if err != nil {
		return err
	}

	pol, err := loadPolicy(path)
	if err != nil {
		return err
	}

	reports, err := loadReports([]string{path})
	if err != nil {
		return err
	}
	idx := aggregator.Build(reports[0].Collection)
	rows := aggregator.Flatten(idx)
	result := pol.Evaluate(rows)

	if checkJSON {
		out := checkOutput{
			Report: reporter.NewJSONReporter(stdout, true).Build(idx, opts),
			Policy: result,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(stdout, "%s\n", data); err != nil {
			return err
		}
	} else {
		if err := reporter.NewTextReporter(stdout, checkTop).Generate(idx, opts); err != nil {
			return err
		}
		printPolicyResult(stdout, result)
	}

	if !result.Pass {
		for _, v := range result.Violations {
			logError("Policy violation [%s]: %s", v.Rule, v.Message)
		}
		return &ThresholdExceededError{Violations: len(result.Violations), BugCount: len(rows)}
	}
	logVerbose("Policy check passed")
	return nil
}

// loadPolicy reads --policy or the nearest policy file. --max-bugs
// replaces the max_bugs rule. A missing policy yields an empty one.
func loadPolicy(reportPath string) (*policy.Policy, error) {
	path := checkPolicy
	if path == "" {
		path = policy.FindPolicyFile(filepath.Dir(reportPath))
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read policy: %w", err)
	}

	pol := &policy.Policy{}
	if path != "" {
		logVerbose("Found policy file: %s", path)
		loaded, err := policy.LoadFromFile(path)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		if loaded != nil {
			pol = loaded
		}
	}

	if checkMaxBugs >= 0 {
		limit := checkMaxBugs
		pol.Rules.MaxBugs = &limit
	}
	return pol, nil
}

func printPolicyResult(w io.Writer, result *policy.Result) {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	if result.Pass {
		fmt.Fprintf(w, "\nPolicy: %s\n", pass("PASS"))
		return
	}

	fmt.Fprintf(w, "\nPolicy: %s\n", fail("FAIL"))
	for _, v := range result.Violations {
		fmt.Fprintf(w, "  - [%s] %s\n", v.Rule, v.Message)
	}
}
