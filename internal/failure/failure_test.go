package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"parse", Parsef("parse", "a,+", "stack underflow"), KindParse},
		{"unresolved", Unresolved("metric info", "cpu"), KindUnresolvedReference},
		{"schema", Schemaf("graph", "metrics", "missing"), KindSchemaMismatch},
		{"wrapped", fmt.Errorf("graph x: %w", Schemaf("graph", "title", "missing")), KindSchemaMismatch},
		{"plain", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	err := Parse("parse", "MAX", ErrUnsupportedToken)

	assert.True(t, IsParse(err))
	assert.True(t, errors.Is(err, ErrUnsupportedToken))
	assert.False(t, IsSchemaMismatch(err))
	assert.False(t, IsUnresolved(err))

	assert.True(t, IsUnresolved(Unresolved("connect", "mem")))
	assert.True(t, IsSchemaMismatch(fmt.Errorf("wrap: %w", Schemaf("graph", "metrics", "missing"))))
}

func TestErrorMessage(t *testing.T) {
	err := Parsef("parse expression", "a,+", "operator %q needs two operands", "+")
	assert.Equal(t, `parse expression "a,+": operator "+" needs two operands`, err.Error())

	assert.Equal(t, `metric info "cpu"`, Unresolved("metric info", "cpu").Error())
	assert.Equal(t, "schema_mismatch", KindSchemaMismatch.String())
}
