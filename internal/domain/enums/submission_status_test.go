package enums

import "testing"

func TestParseSubmissionStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want SubmissionStatus
	}{
		{raw: "APPROVED", want: StatusApproved},
		{raw: "rejected", want: StatusRejected},
		{raw: " pending ", want: StatusPending},
		{raw: "garbage", want: StatusPending},
		{raw: "", want: StatusPending},
	}

	for _, tt := range tests {
		if got := ParseSubmissionStatus(tt.raw); got != tt.want {
			t.Fatalf("parse %q: got %s want %s", tt.raw, got, tt.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if StatusPending.Terminal() {
		t.Fatalf("PENDING must not be terminal")
	}
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Fatalf("APPROVED and REJECTED must be terminal")
	}
}
