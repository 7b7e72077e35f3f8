package palette

import "testing"

func TestEvenly(t *testing.T) {
	got := Evenly(4)
	if len(got) != 4 {
		t.Fatalf("got %d colours, want 4", len(got))
	}
	// Hue 0 at s=0.5, v=0.5 is (0.5, 0.25, 0.25); channels truncate.
	// Hue 90 is (0.375, 0.5, 0.25).
	if got[0] != "#7f3f3f" {
		t.Errorf("first colour = %s, want #7f3f3f", got[0])
	}
	if got[1] != "#5f7f3f" {
		t.Errorf("second colour = %s, want #5f7f3f", got[1])
	}
	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate colour %s", c)
		}
		seen[c] = true
	}
	if Evenly(0) != nil {
		t.Error("Evenly(0) should be nil")
	}
}

func TestDetailColor(t *testing.T) {
	if DetailColor != "#7f3f3f" {
		t.Errorf("DetailColor = %s, want #7f3f3f", DetailColor)
	}
	if one := ForNodes([]string{"Sales"}, true); one["Sales"] != DetailColor {
		t.Errorf("single overview node = %s, want %s", one["Sales"], DetailColor)
	}
}

func TestForNodes(t *testing.T) {
	nodes := []string{"Sales", "Billing", "Transition"}

	over := ForNodes(nodes, true)
	if len(over) != 3 || over["Sales"] == over["Billing"] {
		t.Errorf("overview colours = %v", over)
	}

	detail := ForNodes(nodes, false)
	for _, id := range nodes {
		if detail[id] != DetailColor {
			t.Errorf("%s = %s, want %s", id, detail[id], DetailColor)
		}
	}
}
