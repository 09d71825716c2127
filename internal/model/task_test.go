package model_test

import (
	"testing"

	"kairos/internal/model"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want model.Status
		ok   bool
	}{
		{"not started", model.StatusNotStarted, true},
		{"Not Started", model.StatusNotStarted, true},
		{"in progress", model.StatusInProgress, true},
		{"IN PROGRESS", model.StatusInProgress, true},
		{"completed", model.StatusCompleted, true},
		{"  Completed  ", model.StatusCompleted, true},
		{"done", "", false},
		{"blocked", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := model.NormalizeStatus(tc.in)
		if ok != tc.ok {
			t.Errorf("NormalizeStatus(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		in   string
		want model.Priority
	}{
		{"high", model.PriorityHigh},
		{"HIGH", model.PriorityHigh},
		{" low ", model.PriorityLow},
		{"medium", model.PriorityMedium},
		{"urgent", model.PriorityMedium},
		{"", model.PriorityMedium},
	}

	for _, tc := range cases {
		if got := model.NormalizePriority(tc.in); got != tc.want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPriorityWeight(t *testing.T) {
	cases := []struct {
		priority model.Priority
		want     int
	}{
		{model.PriorityHigh, 3},
		{model.PriorityMedium, 2},
		{model.PriorityLow, 1},
		{model.Priority("bogus"), 1},
	}

	for _, tc := range cases {
		if got := tc.priority.Weight(); got != tc.want {
			t.Errorf("%q Weight() = %d, want %d", tc.priority, got, tc.want)
		}
	}
}
