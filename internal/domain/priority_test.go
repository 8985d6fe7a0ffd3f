package domain

import (
	"sort"
	"testing"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"critical", PriorityCritical},
		{"CRITICAL", PriorityCritical},
		{" Critical ", PriorityCritical},
		{"high", PriorityHigh},
		{"HiGh", PriorityHigh},
		{"normal", PriorityNormal},
		{"low", PriorityLow},
		{"LOW", PriorityLow},
		{"", PriorityNormal},
		{"urgent", PriorityNormal},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	ps := []Priority{PriorityLow, PriorityNormal, PriorityCritical, PriorityHigh}
	sort.Slice(ps, func(i, k int) bool { return ps[i].Rank() < ps[k].Rank() })

	want := []Priority{PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow}
	for i := range want {
		if ps[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", ps, want)
		}
	}

	// Unvalidated column values rank with normal.
	if Priority("URGENT").Rank() != PriorityNormal.Rank() {
		t.Error("unknown priority should rank as normal")
	}
	if Priority("High").Rank() != PriorityHigh.Rank() {
		t.Error("Rank must normalize casing")
	}
}
