package validator

import (
	"fmt"
	"sort"

	"github.com/mvp-joe/doclint/internal/check"
	"github.com/mvp-joe/doclint/internal/extractor"
)

// Validator runs a fixed set of rules over the candidates of one
// file.
type Validator struct {
	rules []Rule
}

// Options selects which rules run and with what limits.
type Options struct {
	MaxLineLength        int
	SkipMissingDocstring bool
	CheckSummary         bool
	RequirePeriod        bool
}

// New builds a validator from options. Line length is always
// enforced; the remaining rules are opt-in.
func New(opts Options) *Validator {
	rules := []Rule{LineLength{Max: opts.MaxLineLength}}
	if !opts.SkipMissingDocstring {
		rules = append(rules, MissingDocstring{})
	}
	if opts.CheckSummary {
		rules = append(rules, Summary{})
		if opts.RequirePeriod {
			rules = append(rules, Period{})
		}
	}
	return &Validator{rules: rules}
}

// Validate applies every rule to every candidate and returns the
// violations sorted by (line, rule ID). It never fails on well-formed
// candidates; a candidate with no position is a contract violation
// from the extractor and is reported as an internal error.
func (v *Validator) Validate(filePath string, candidates []extractor.Candidate) ([]check.Violation, error) {
	var violations []check.Violation

	for _, cand := range candidates {
		if cand.StartLine < 1 {
			return nil, fmt.Errorf("internal: candidate %q has no start line", cand.Name)
		}
		for _, rule := range v.rules {
			for _, viol := range rule.Check(cand) {
				viol.FilePath = filePath
				violations = append(violations, viol)
			}
		}
	}

	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].RuleID < violations[j].RuleID
	})

	return violations, nil
}
