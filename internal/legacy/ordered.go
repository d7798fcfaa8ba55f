package legacy

import (
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Ordered is a string keyed map that remembers insertion order. Setting an
// existing key replaces the value in place, like updating a dict.
// A nil *Ordered reads as empty.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrdered returns an empty map.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{values: map[string]V{}}
}

// Set stores v under k.
func (o *Ordered[V]) Set(k string, v V) {
	if o.values == nil {
		o.values = map[string]V{}
	}
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

// Get returns the value stored under k.
func (o *Ordered[V]) Get(k string) (V, bool) {
	if o == nil {
		var zero V
		return zero, false
	}
	v, ok := o.values[k]
	return v, ok
}

// Has reports whether k is present.
func (o *Ordered[V]) Has(k string) bool {
	_, ok := o.Get(k)
	return ok
}

// Len returns the number of keys.
func (o *Ordered[V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// All iterates over the entries in insertion order.
func (o *Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Update sets every entry of other, in other's order.
func (o *Ordered[V]) Update(other *Ordered[V]) {
	for k, v := range other.All() {
		o.Set(k, v)
	}
}

// UnmarshalYAML decodes a mapping node keeping document order.
func (o *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var v V
		if err := valueNode.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		o.Set(keyNode.Value, v)
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown node"
}
