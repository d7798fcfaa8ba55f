package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_Validate(t *testing.T) {
	valid := func() *Run {
		return &Run{
			StartedAt:    time.Now(),
			Folders:      []string{"defs"},
			Unparseables: []Unparseable{{Namespace: "graphs", Name: "cpu"}},
		}
	}

	tests := []struct {
		name    string
		modify  func(r *Run)
		wantErr bool
	}{
		{"valid", func(r *Run) {}, false},
		{"missing start", func(r *Run) { r.StartedAt = time.Time{} }, true},
		{"negative duration", func(r *Run) { r.Duration = -time.Second }, true},
		{"no folders", func(r *Run) { r.Folders = nil }, true},
		{"unnamed unparseable", func(r *Run) { r.Unparseables[0].Name = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.modify(r)
			if tt.wantErr {
				assert.Error(t, r.Validate())
			} else {
				assert.NoError(t, r.Validate())
			}
		})
	}
}

func TestCounts_Objects(t *testing.T) {
	c := Counts{Units: 3, Metrics: 2, Translations: 1, Perfometers: 4, Graphs: 5, Unparseables: 7}
	assert.Equal(t, 12, c.Objects())
}
