package domain

import "strings"

// Priority is the urgency level of a job, lead, contract, or stop.
// Values include PriorityCritical, PriorityHigh, PriorityNormal, and
// PriorityLow, ordered most urgent first.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
	PriorityLow      Priority = "low"
)

// ParsePriority normalizes an externally-sourced priority string into a
// Priority. Source records carry inconsistent casing ("High", "LOW"), so
// matching is case-insensitive; unknown values fall back to PriorityNormal.
// Parameters:
//   - s: raw priority string.
// Returns:
//   - Priority: normalized priority value.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityNormal
	}
}

// Rank returns the total-order position of the priority, most urgent first
// (critical=0 .. low=3). Unknown values rank with normal.
func (p Priority) Rank() int {
	switch ParsePriority(string(p)) {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}
