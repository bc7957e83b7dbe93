package topic

import "testing"

func TestTopicSegments(t *testing.T) {
	tests := []struct {
		topic Topic
		want  int
	}{
		{"", 0},
		{"tooltip", 1},
		{"tooltip.show", 2},
		{"popover.command.hide", 3},
	}

	for _, tt := range tests {
		if got := len(tt.topic.Segments()); got != tt.want {
			t.Errorf("Segments(%q) count = %d, want %d", tt.topic, got, tt.want)
		}
	}
}

func TestTopicParentChildBase(t *testing.T) {
	top := Topic("popover.command.hide")

	if got := top.Parent(); got != "popover.command" {
		t.Errorf("Parent() = %q, want %q", got, "popover.command")
	}
	if got := top.Base(); got != "hide" {
		t.Errorf("Base() = %q, want %q", got, "hide")
	}
	if got := Topic("tooltip").Child("show"); got != "tooltip.show" {
		t.Errorf("Child() = %q, want %q", got, "tooltip.show")
	}
	if got := Topic("").Child("show"); got != "show" {
		t.Errorf("Child() on empty = %q, want %q", got, "show")
	}
	if got := Topic("tooltip").Parent(); got != "" {
		t.Errorf("Parent() of single segment = %q, want empty", got)
	}
}

func TestIsPattern(t *testing.T) {
	if Topic("tooltip.show").IsPattern() {
		t.Error("expected concrete topic to not be a pattern")
	}
	if !Topic("tooltip.*").IsPattern() {
		t.Error("expected single wildcard to be a pattern")
	}
	if !Topic("tooltip.**").IsPattern() {
		t.Error("expected multi wildcard to be a pattern")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern Topic
		topic   Topic
		want    bool
	}{
		{"tooltip.show", "tooltip.show", true},
		{"tooltip.show", "tooltip.shown", false},
		{"tooltip.*", "tooltip.show", true},
		{"tooltip.*", "tooltip.command.show", false},
		{"tooltip.**", "tooltip.command.show", true},
		{"tooltip.**", "tooltip.show", true},
		{"tooltip.**", "popover.show", false},
		{"*.command.hide", "popover.command.hide", true},
		{"*.command.hide", "popover.command.show", false},
		{"tooltip.command.*", "tooltip.command.enable", true},
		{"", "tooltip.show", false},
		{"tooltip.show", "", false},
	}

	for _, tt := range tests {
		if got := Match(tt.pattern, tt.topic); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}
