package models

import "testing"

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{Price: 10, Quantity: 2},
		{Price: 5, Quantity: 1},
	}
	if got := ComputeTotal(items); got != 25 {
		t.Errorf("ComputeTotal = %v, want 25", got)
	}

	if got := ComputeTotal(nil); got != 0 {
		t.Errorf("ComputeTotal(nil) = %v, want 0", got)
	}

	// Fractional prices must round to cents.
	items = []OrderItem{{Price: 0.1, Quantity: 3}}
	if got := ComputeTotal(items); got != 0.3 {
		t.Errorf("ComputeTotal = %v, want 0.3", got)
	}
}

func TestFormatOrderNumber(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "CMD-0001"},
		{42, "CMD-0042"},
		{9999, "CMD-9999"},
		{12345, "CMD-12345"},
	}
	for _, c := range cases {
		if got := FormatOrderNumber(c.seq); got != c.want {
			t.Errorf("FormatOrderNumber(%d) = %q, want %q", c.seq, got, c.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	// Normal flow advances, and any live order may be cancelled.
	allowed := [][2]string{
		{StatusPending, StatusProcessing},
		{StatusProcessing, StatusShipped},
		{StatusShipped, StatusDelivered},
		{StatusPending, StatusCancelled},
		{StatusShipped, StatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	// Terminal states are frozen.
	for _, from := range []string{StatusDelivered, StatusCancelled} {
		for _, to := range []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
			if CanTransition(from, to) {
				t.Errorf("expected %s -> %s to be rejected", from, to)
			}
		}
	}

	if CanTransition(StatusPending, "mislaid") {
		t.Error("expected transition to unknown status to be rejected")
	}
	if CanTransition(StatusPending, StatusPending) {
		t.Error("expected self-transition to be rejected")
	}
}

func TestLoyaltyPointsFor(t *testing.T) {
	cases := []struct {
		total float64
		want  int
	}{
		{0, 0},
		{-3, 0},
		{0.99, 0},
		{25, 25},
		{99.99, 99},
	}
	for _, c := range cases {
		if got := LoyaltyPointsFor(c.total); got != c.want {
			t.Errorf("LoyaltyPointsFor(%v) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestEstimateImpact(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2},
		{Quantity: 3},
	}
	co2, water, units := EstimateImpact(items)
	if units != 5 {
		t.Errorf("units = %d, want 5", units)
	}
	if co2 <= 0 || water <= 0 {
		t.Errorf("impact must be positive, got co2=%v water=%v", co2, water)
	}
}
