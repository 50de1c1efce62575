package constraint

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		exists bool
	}{
		{"minutes", "complete in 40 minutes", 40, true},
		{"hour", "about an 1 hour budget", 60, true},
		{"hours plural", "takes 2 hours", 120, true},
		{"mins", "45 mins", 45, true},
		{"min", "30 min max", 30, true},
		{"hr", "1 hr", 60, true},
		{"hrs", "3 hrs total", 180, true},
		{"no phrase", "java developers with spring experience", 0, false},
		{"minute beats earlier hour", "1 hour 20 minutes", 20, true},
		{"first minute match wins", "either 30 minutes or 50 minutes", 30, true},
		{"uppercase input", "Complete In 40 Minutes", 40, true},
		{"no space before unit", "40minutes", 40, true},
		{"bare number", "team of 12", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got.Exists() != tt.exists {
				t.Fatalf("Extract(%q).Exists() = %v, want %v", tt.text, got.Exists(), tt.exists)
			}
			if tt.exists && got.Minutes() != tt.want {
				t.Errorf("Extract(%q).Minutes() = %d, want %d", tt.text, got.Minutes(), tt.want)
			}
		})
	}
}

func TestExtract_AnHour(t *testing.T) {
	got := Extract("the budget is about an hour for each test")
	if !got.Exists() {
		t.Fatal("expected a constraint for \"about an hour\"")
	}
	if got.Minutes() != 60 {
		t.Errorf("Minutes() = %d, want 60", got.Minutes())
	}
}

func TestExtract_AnInsideWordIgnored(t *testing.T) {
	got := Extract("plan hourly check-ins with the team")
	if got.Exists() {
		t.Errorf("expected no constraint, got %d", got.Minutes())
	}
}

func TestAllows(t *testing.T) {
	limit := Limit(40)

	if !limit.Allows(35) {
		t.Error("35 should pass a 40 minute limit")
	}
	if !limit.Allows(40) {
		t.Error("40 should pass a 40 minute limit (inclusive)")
	}
	if limit.Allows(41) {
		t.Error("41 should not pass a 40 minute limit")
	}
	if !limit.Allows(0) {
		t.Error("unparseable (zero) item duration always passes")
	}
}

func TestAllows_NoConstraint(t *testing.T) {
	if !None().Allows(500) {
		t.Error("no constraint should pass everything")
	}
}

func TestAllows_ZeroLimit(t *testing.T) {
	// A captured "0 minutes" behaves as no constraint.
	if !Limit(0).Allows(90) {
		t.Error("zero limit should pass everything")
	}
}
