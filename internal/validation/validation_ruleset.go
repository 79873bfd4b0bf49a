package validation

import (
	"context"
	"fmt"
	"sort"

	"go-vacation/internal/domain"
	"go-vacation/internal/shared/outcome"
)

// RuleSet runs rules in ascending Order. Rules sharing an Order keep their
// registration order. A RuleSet is immutable after NewRuleSet.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules ...Rule) RuleSet {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order() < sorted[j].Order()
	})
	return RuleSet{rules: sorted}
}

// NewVacationRuleSet wires the rules checked before a vacation is stored or
// approved.
func NewVacationRuleSet(lookup VacationLookup) RuleSet {
	return NewRuleSet(
		TeamMembershipRule{},
		NewVacationOverlapRule(lookup),
	)
}

func (s RuleSet) Names() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name()
	}
	return names
}

// Validate returns the first failure, or success when every rule passes.
func (s RuleSet) Validate(ctx context.Context, vacation *domain.Vacation, user *domain.User) (outcome.Result, error) {
	for _, r := range s.rules {
		res, err := r.Validate(ctx, vacation, user)
		if err != nil {
			return outcome.Result{}, fmt.Errorf("rule %s: %w", r.Name(), err)
		}
		if !res.OK() {
			return res, nil
		}
	}
	return outcome.Success(), nil
}

// ValidateAll runs every rule and returns the failures in evaluation order.
// An empty slice means the vacation is valid.
func (s RuleSet) ValidateAll(ctx context.Context, vacation *domain.Vacation, user *domain.User) ([]outcome.Result, error) {
	failures := []outcome.Result{}
	for _, r := range s.rules {
		res, err := r.Validate(ctx, vacation, user)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name(), err)
		}
		if !res.OK() {
			failures = append(failures, res)
		}
	}
	return failures, nil
}
