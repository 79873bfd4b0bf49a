package validation

import (
	"context"
	"fmt"

	"go-vacation/internal/domain"
	"go-vacation/internal/shared/outcome"

	"github.com/google/uuid"
)

// Rule is one named business check over a candidate vacation. Rules with a
// lower Order run first.
type Rule interface {
	Name() string
	Order() int
	Validate(ctx context.Context, vacation *domain.Vacation, user *domain.User) (outcome.Result, error)
}

// VacationLookup returns every vacation owned by userID, in any status.
type VacationLookup interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vacation, error)
}

type TeamMembershipRule struct{}

func (TeamMembershipRule) Name() string { return "team-membership" }
func (TeamMembershipRule) Order() int   { return 1 }

func (TeamMembershipRule) Validate(_ context.Context, _ *domain.Vacation, user *domain.User) (outcome.Result, error) {
	if !user.HasTeam() {
		return outcome.Failure("user must belong to a team to request a vacation", outcome.CodeTeamMembershipRequired), nil
	}
	return outcome.Success(), nil
}

// VacationOverlapRule rejects a candidate whose dates touch any other
// APPROVED vacation of the same owner. The candidate's own id is excluded.
type VacationOverlapRule struct {
	lookup VacationLookup
}

func NewVacationOverlapRule(lookup VacationLookup) VacationOverlapRule {
	return VacationOverlapRule{lookup: lookup}
}

func (VacationOverlapRule) Name() string { return "vacation-overlap" }
func (VacationOverlapRule) Order() int   { return 2 }

func (r VacationOverlapRule) Validate(ctx context.Context, vacation *domain.Vacation, _ *domain.User) (outcome.Result, error) {
	if vacation == nil {
		return outcome.Result{}, fmt.Errorf("%s: candidate vacation is nil", r.Name())
	}

	existing, err := r.lookup.FindByUser(ctx, vacation.UserID)
	if err != nil {
		return outcome.Result{}, fmt.Errorf("%s: lookup vacations: %w", r.Name(), err)
	}

	for _, other := range existing {
		if other.ID == vacation.ID || other.Status != domain.VacationStatusApproved {
			continue
		}
		if vacation.Overlaps(other) {
			return outcome.Failure(fmt.Sprintf(
				"vacation overlaps an approved vacation from %s to %s",
				other.StartDate.Format(domain.DateLayout),
				other.EndDate.Format(domain.DateLayout),
			), outcome.CodeVacationOverlap), nil
		}
	}
	return outcome.Success(), nil
}
