package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAuthzDecision(t *testing.T) {
	AuthzDecisionsTotal.Reset()

	RecordAuthzDecision("approve-vacation", "granted", "")
	RecordAuthzDecision("approve-vacation", "granted", "")
	RecordAuthzDecision("approve-vacation", "denied", "SAME_TEAM_REQUIRED")

	count := testutil.ToFloat64(AuthzDecisionsTotal.WithLabelValues("approve-vacation", "granted", ""))
	if count != 2 {
		t.Errorf("Expected granted count = 2, got %f", count)
	}

	count = testutil.ToFloat64(AuthzDecisionsTotal.WithLabelValues("approve-vacation", "denied", "SAME_TEAM_REQUIRED"))
	if count != 1 {
		t.Errorf("Expected denied count = 1, got %f", count)
	}
}

func TestRecordValidationFailure(t *testing.T) {
	ValidationFailuresTotal.Reset()

	RecordValidationFailure("VACATION_OVERLAP")

	count := testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues("VACATION_OVERLAP"))
	if count != 1 {
		t.Errorf("Expected overlap count = 1, got %f", count)
	}
}

func TestRecordVacationDecision(t *testing.T) {
	VacationDecisionsTotal.Reset()

	RecordVacationDecision("APPROVED")
	RecordVacationDecision("REJECTED")
	RecordVacationDecision("APPROVED")

	if got := testutil.ToFloat64(VacationDecisionsTotal.WithLabelValues("APPROVED")); got != 2 {
		t.Errorf("Expected approved count = 2, got %f", got)
	}
	if got := testutil.ToFloat64(VacationDecisionsTotal.WithLabelValues("REJECTED")); got != 1 {
		t.Errorf("Expected rejected count = 1, got %f", got)
	}
}
