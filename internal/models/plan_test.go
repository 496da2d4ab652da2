package models

import "testing"

// TestTargetSets verifies defensive parsing of set descriptors.
// Generated plans emit strings like "3-4", so malformed values must
// fall back to the default instead of failing the session.
func TestTargetSets(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"5", 5},
		{"3-4", 3},
		{"", DefaultTargetSets},
		{"AMRAP", DefaultTargetSets},
		{"0", DefaultTargetSets},
	}
	for _, tt := range tests {
		ex := WorkoutExercise{Sets: tt.in}
		if got := ex.TargetSets(); got != tt.want {
			t.Errorf("TargetSets(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTargetReps(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"30s", 30},
		{"12/side", 12},
		{"8-12", 8},
		{"to failure", DefaultTargetReps},
		{"", DefaultTargetReps},
	}
	for _, tt := range tests {
		ex := WorkoutExercise{Reps: tt.in}
		if got := ex.TargetReps(); got != tt.want {
			t.Errorf("TargetReps(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVolume(t *testing.T) {
	l := ExerciseLog{Sets: 3, Reps: 10, Weight: 50}
	if got := l.Volume(); got != 1500 {
		t.Errorf("Volume() = %v, want 1500", got)
	}
	if got := l.TotalReps(); got != 30 {
		t.Errorf("TotalReps() = %d, want 30", got)
	}
	bodyweight := ExerciseLog{Sets: 3, Reps: 10, Weight: 0}
	if got := bodyweight.Volume(); got != 0 {
		t.Errorf("bodyweight Volume() = %v, want 0", got)
	}
}
