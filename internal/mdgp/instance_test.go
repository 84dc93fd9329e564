package mdgp

import (
	"errors"
	"testing"
)

func TestNewInstanceValidBounds(t *testing.T) {
	inst, err := NewInstance(6, 2, []int{2, 2}, []int{4, 4})
	if err != nil {
		t.Fatalf("NewInstance failed: %v", err)
	}
	if inst.N != 6 || inst.K != 2 {
		t.Errorf("got N=%d K=%d, want 6 and 2", inst.N, inst.K)
	}
}

func TestNewInstanceInfeasibleBounds(t *testing.T) {
	// sum(LB) > N
	_, err := NewInstance(3, 2, []int{2, 2}, []int{4, 4})
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("expected BoundsError for sum(LB) > N, got %v", err)
	}

	// sum(UB) < N
	_, err = NewInstance(10, 2, []int{1, 1}, []int{4, 4})
	if !errors.As(err, &be) {
		t.Fatalf("expected BoundsError for sum(UB) < N, got %v", err)
	}
}

func TestNewInstanceBadArguments(t *testing.T) {
	if _, err := NewInstance(0, 2, []int{0, 0}, []int{1, 1}); err == nil {
		t.Error("expected error for N=0")
	}
	if _, err := NewInstance(4, 2, []int{0}, []int{4, 4}); err == nil {
		t.Error("expected error for bounds length mismatch")
	}
	if _, err := NewInstance(4, 2, []int{3, 0}, []int{2, 4}); err == nil {
		t.Error("expected error for LB > UB")
	}
}

func TestDissimSymmetry(t *testing.T) {
	inst, err := NewUniformInstance(4, 2, 1, 3)
	if err != nil {
		t.Fatalf("NewUniformInstance failed: %v", err)
	}

	inst.SetDissim(0, 3, 2.5)
	if got := inst.Dissim(3, 0); got != 2.5 {
		t.Errorf("Dissim(3,0) = %v, want 2.5 (symmetric)", got)
	}

	// Self-pairs are ignored; diagonal stays zero.
	inst.SetDissim(1, 1, 9.0)
	if got := inst.Dissim(1, 1); got != 0 {
		t.Errorf("Dissim(1,1) = %v, want 0", got)
	}
}

func TestTotalDissim(t *testing.T) {
	inst, _ := NewUniformInstance(3, 1, 0, 3)
	inst.SetDissim(0, 1, 1)
	inst.SetDissim(0, 2, 2)
	inst.SetDissim(1, 2, 3)

	if got := inst.TotalDissim(); got != 6 {
		t.Errorf("TotalDissim = %v, want 6", got)
	}
}
