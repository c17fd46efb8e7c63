package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/integrators"
	"github.com/san-kum/polsim/internal/models"
)

func TestTotalsAndShares(t *testing.T) {
	x := dynamo.State{50, 30, 20, 10, 0, 30}
	n1, n2 := Totals(x)
	if n1 != 100 || n2 != 40 {
		t.Fatalf("expected totals 100, 40, got %v, %v", n1, n2)
	}

	s := Shares(x)
	want := [6]float64{0.5, 0.3, 0.2, 0.25, 0, 0.75}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			t.Errorf("share %d: expected %v, got %v", i, want[i], s[i])
		}
	}

	empty := Shares(dynamo.State{0, 0, 0, 1, 1, 2})
	if empty[models.V1] != 0 || empty[models.E] != 0.5 {
		t.Errorf("unexpected shares for empty country: %v", empty)
	}
}

func TestConvergenceOrderRK4(t *testing.T) {
	p := models.Symmetric(0.016, 0.5, 0.1, 0.01, 0.02)
	p.K1 = 0.4
	x0 := dynamo.State{1000, 1000, 1000, 500, 500, 500}

	conv, err := ConvergenceOrder(context.Background(), models.NewDeterministic(p), integrators.NewRK4(),
		x0, 0, 50, []int{25, 50, 100}, 3200)
	if err != nil {
		t.Fatal(err)
	}
	if len(conv.Errors) != 3 || len(conv.Orders) != 2 {
		t.Fatalf("unexpected shape: %+v", conv)
	}
	for i, order := range conv.Orders {
		if order < 3.5 || order > 4.5 {
			t.Errorf("order %d: expected ~4, got %.3f", i, order)
		}
	}
}

func TestConvergenceOrderEuler(t *testing.T) {
	p := models.Symmetric(0.016, 0.5, 0.1, 0.01, 0.02)
	p.K1 = 0.4
	x0 := dynamo.State{1000, 1000, 1000, 500, 500, 500}

	conv, err := ConvergenceOrder(context.Background(), models.NewDeterministic(p), integrators.NewEuler(),
		x0, 0, 50, []int{400, 800}, 102400)
	if err != nil {
		t.Fatal(err)
	}
	if conv.Orders[0] < 0.8 || conv.Orders[0] > 1.2 {
		t.Errorf("expected ~1, got %.3f", conv.Orders[0])
	}
}

func TestConvergenceOrderRejectsBadInput(t *testing.T) {
	sys := models.NewDeterministic(models.Symmetric(0.016, 0.5, 0.1, 0.01, 0.02))
	x0 := dynamo.State{1, 1, 1, 1, 1, 1}

	if _, err := ConvergenceOrder(context.Background(), sys, integrators.NewRK4(), x0, 0, 1, []int{10}, 100); err == nil {
		t.Error("expected error for a single resolution")
	}
	if _, err := ConvergenceOrder(context.Background(), sys, integrators.NewRK4(), x0, 0, 1, []int{10, 200}, 100); err == nil {
		t.Error("expected error for resolution beyond reference")
	}
}

func TestSharePortrait(t *testing.T) {
	result := &dynamo.Result{
		Times: []float64{0, 1},
		States: []dynamo.State{
			{50, 25, 25, 1, 1, 1},
			{20, 60, 20, 1, 1, 1},
		},
	}

	p := SharePortrait(result, models.B, models.C)
	if p == nil || len(p.Points) != 2 {
		t.Fatalf("expected 2 points, got %+v", p)
	}
	if p.Points[1].X != 0.6 || p.Points[1].Y != 0.2 {
		t.Errorf("unexpected final point %+v", p.Points[1])
	}

	art := PortraitToASCII(p, 20, 10)
	if strings.Count(art, "\n") != 10 {
		t.Errorf("expected 10 rows, got %q", art)
	}
	if !strings.ContainsRune(art, 'o') || !strings.ContainsRune(art, 'x') {
		t.Error("expected start and end markers")
	}

	if SharePortrait(result, 0, 9) != nil {
		t.Error("expected nil for out of range index")
	}
}
