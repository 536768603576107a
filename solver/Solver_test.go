package solver

import "testing"

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"Vanilla", Vanilla},
		{"", Vanilla}, // default
		{"Adam", Adam},
	}

	for _, test := range tests {
		s, err := FromName(test.name, 0.1)
		if err != nil {
			t.Fatalf("FromName(%q): %v", test.name, err)
		}
		if s.Type != test.want {
			t.Errorf("FromName(%q) created a %v solver, expected %v",
				test.name, s.Type, test.want)
		}
	}
}

func TestFromNameUnknown(t *testing.T) {
	if _, err := FromName("RMSProp", 0.1); err == nil {
		t.Error("expected error for unknown solver name")
	}
}

func TestNewSolverRejectsMismatchedType(t *testing.T) {
	if _, err := newSolver(Adam, VanillaConfig{StepSize: 0.1,
		Batch: 1}); err == nil {
		t.Error("expected error for mismatched solver type")
	}
}
