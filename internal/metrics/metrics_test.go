package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/polsim/internal/dynamo"
)

func TestTotalsDrift(t *testing.T) {
	m := NewTotalsDrift()

	m.Observe(dynamo.State{100, 50, 50, 300, 0, 0}, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after first sample, got %f", m.Value())
	}

	m.Observe(dynamo.State{90, 60, 50, 300, 0, 0}, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero drift for internal exchange, got %f", m.Value())
	}

	m.Observe(dynamo.State{100, 50, 50, 330, 0, 0}, 2)
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected drift 0.1, got %f", m.Value())
	}

	m.Observe(dynamo.State{100, 50, 50, 300, 0, 0}, 3)
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected drift to keep its maximum, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestPartyGap(t *testing.T) {
	m := NewPartyGap()

	m.Observe(dynamo.State{50, 30, 20, 1, 1, 1}, 0)
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected gap 0.1, got %f", m.Value())
	}

	m.Observe(dynamo.State{0, 0, 0, 1, 1, 1}, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero gap for empty country, got %f", m.Value())
	}
}

func TestMinCompartment(t *testing.T) {
	m := NewMinCompartment()
	if m.Value() != 0 {
		t.Error("expected zero before any sample")
	}

	m.Observe(dynamo.State{5, 4, 3, 2, 1, 6}, 0)
	m.Observe(dynamo.State{5, 4, -0.5, 2, 1, 6}, 1)
	m.Observe(dynamo.State{5, 4, 3, 2, 1, 6}, 2)

	if m.Value() != -0.5 {
		t.Errorf("expected min -0.5, got %f", m.Value())
	}
	if m.Negatives() != 1 {
		t.Errorf("expected 1 negative state, got %d", m.Negatives())
	}

	m.Reset()
	if m.Value() != 0 || m.Negatives() != 0 {
		t.Error("expected clean state after reset")
	}
}

func TestDefaultsAreFresh(t *testing.T) {
	a, b := Defaults(), Defaults()
	if len(a) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(a))
	}
	a[0].Observe(dynamo.State{1, 1, 1, 1, 1, 1}, 0)
	a[0].Observe(dynamo.State{2, 1, 1, 1, 1, 1}, 1)
	if b[0].Value() != 0 {
		t.Error("metric sets share state")
	}
}
