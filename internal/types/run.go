package types

import (
	"fmt"
	"time"
)

// Run is one migration run as recorded in the ledger
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	// Duration is stored with millisecond precision
	Duration     time.Duration `json:"duration"`
	Folders      []string      `json:"folders"`
	MetricNames  []string      `json:"metric_names"`
	Translations bool          `json:"translations"`
	Sanitized    bool          `json:"sanitized"`
	Counts       Counts        `json:"counts"`
	// Unparseables is only populated when recording; ListRuns reports
	// Counts.Unparseables instead.
	Unparseables []Unparseable `json:"unparseables,omitempty"`
}

// Counts are the numbers of emitted objects per kind
type Counts struct {
	Units        int `json:"units"`
	Metrics      int `json:"metrics"`
	Translations int `json:"translations"`
	Perfometers  int `json:"perfometers"`
	Graphs       int `json:"graphs"`
	Unparseables int `json:"unparseables"`
}

// Objects sums all emitted objects except units
func (c Counts) Objects() int {
	return c.Metrics + c.Translations + c.Perfometers + c.Graphs
}

// Unparseable is a legacy record a run could not migrate
type Unparseable struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// Validate checks if the run can be recorded
func (r *Run) Validate() error {
	if r.StartedAt.IsZero() {
		return fmt.Errorf("started_at is required")
	}
	if r.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if len(r.Folders) == 0 {
		return fmt.Errorf("at least one folder is required")
	}
	for i, u := range r.Unparseables {
		if u.Namespace == "" || u.Name == "" {
			return fmt.Errorf("unparseable %d needs namespace and name", i)
		}
	}
	return nil
}
