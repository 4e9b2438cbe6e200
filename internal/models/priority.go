package models

import (
	"fmt"
	"strings"
)

// Priority is the optional urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every valid priority from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePriority maps a case-insensitive name to a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority '%s' (must be: low, medium, high, urgent)", s)
	}
	return p, nil
}

// Color returns the display color used for the priority badge
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#22C55E"
	case PriorityMedium:
		return "#EAB308"
	case PriorityHigh:
		return "#F97316"
	case PriorityUrgent:
		return "#EF4444"
	default:
		return "#6B7280"
	}
}
