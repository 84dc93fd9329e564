package store

import (
	"fmt"
	"time"
)

// SolverConfig records the parameters a run was executed with, kept
// alongside the result so runs can be compared and reproduced.
type SolverConfig struct {
	PopMax          int     `json:"popMax"`
	PopMin          int     `json:"popMin"`
	ThetaMax        float64 `json:"thetaMax"`
	ThetaMin        float64 `json:"thetaMin"`
	LMax            int     `json:"lmax"`
	TimeBudgetSecs  float64 `json:"timeBudgetSecs"`
	Seed            int64   `json:"seed"`
	Repetitions     int     `json:"repetitions"`
	DiversityWeight float64 `json:"diversityWeight,omitempty"`
}

// RunRecord is a persisted search result: the best partition found,
// its cost, and enough context to interpret and reproduce it.
type RunRecord struct {
	// RunID is the unique identifier for this run
	RunID string `json:"runId"`

	// Instance is the path or name of the problem instance
	Instance string `json:"instance"`

	// N and K are the element and group counts of the instance
	N int `json:"n"`
	K int `json:"k"`

	// Assign maps each element to its group in the best partition
	Assign []int `json:"assign"`

	// Sizes holds the resulting group sizes
	Sizes []int `json:"sizes"`

	// Cost is the total in-group dissimilarity of the best partition
	Cost float64 `json:"cost"`

	// BestCost/MeanCost/WorstCost aggregate the run's repetitions
	BestCost  float64 `json:"bestCost"`
	MeanCost  float64 `json:"meanCost"`
	WorstCost float64 `json:"worstCost"`

	// Timestamp records when this run finished
	Timestamp time.Time `json:"timestamp"`

	// Config holds the solver parameters used for the run
	Config SolverConfig `json:"config"`
}

// RunInfo contains run metadata without the assignment array. Used for
// listing runs without loading large solutions.
type RunInfo struct {
	RunID     string    `json:"runId"`
	Instance  string    `json:"instance"`
	N         int       `json:"n"`
	K         int       `json:"k"`
	Cost      float64   `json:"cost"`
	Timestamp time.Time `json:"timestamp"`
}

// ToInfo converts a full RunRecord to its metadata view.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:     r.RunID,
		Instance:  r.Instance,
		N:         r.N,
		K:         r.K,
		Cost:      r.Cost,
		Timestamp: r.Timestamp,
	}
}

// Validate checks that the record is internally consistent.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.Instance == "" {
		return &ValidationError{Field: "Instance", Reason: "cannot be empty"}
	}
	if r.N <= 0 || r.K <= 0 {
		return &ValidationError{Field: "N/K", Reason: "must be positive"}
	}
	if len(r.Assign) != r.N {
		return &ValidationError{Field: "Assign", Reason: fmt.Sprintf("length mismatch: got %d, want %d", len(r.Assign), r.N)}
	}
	if len(r.Sizes) != r.K {
		return &ValidationError{Field: "Sizes", Reason: fmt.Sprintf("length mismatch: got %d, want %d", len(r.Sizes), r.K)}
	}
	total := 0
	for g, sz := range r.Sizes {
		if sz < 0 {
			return &ValidationError{Field: "Sizes", Reason: fmt.Sprintf("group %d has negative size", g)}
		}
		total += sz
	}
	if total != r.N {
		return &ValidationError{Field: "Sizes", Reason: fmt.Sprintf("sizes sum to %d, want %d", total, r.N)}
	}
	for i, g := range r.Assign {
		if g < 0 || g >= r.K {
			return &ValidationError{Field: "Assign", Reason: fmt.Sprintf("element %d assigned to invalid group %d", i, g)}
		}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a run record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
