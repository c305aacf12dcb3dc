package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const filterOperatorType = "operator"

// FilterNode is one node of a recipient or demographic filter tree: either a
// Leaf condition or an Operator combining child nodes. Exactly one is set.
type FilterNode[T any] struct {
	Leaf     *T
	Operator *FilterOperator[T]
}

// FilterOperator combines child nodes. Exactly one of And, Or and Not is set
// and it holds at least one child.
type FilterOperator[T any] struct {
	And []FilterNode[T]
	Or  []FilterNode[T]
	Not []FilterNode[T]
}

// Leaf wraps a condition as a filter node
func Leaf[T any](condition T) FilterNode[T] {
	return FilterNode[T]{Leaf: &condition}
}

// And builds an "and" operator node
func And[T any](children ...FilterNode[T]) FilterNode[T] {
	return FilterNode[T]{Operator: &FilterOperator[T]{And: children}}
}

// Or builds an "or" operator node
func Or[T any](children ...FilterNode[T]) FilterNode[T] {
	return FilterNode[T]{Operator: &FilterOperator[T]{Or: children}}
}

// Not builds a "not" operator node
func Not[T any](children ...FilterNode[T]) FilterNode[T] {
	return FilterNode[T]{Operator: &FilterOperator[T]{Not: children}}
}

// Validate checks the node shape of the whole tree, rejects cycles and runs
// the leaf's own Validate method when it has one.
func (n FilterNode[T]) Validate() error {
	return n.validate(map[*FilterOperator[T]]bool{}, "$")
}

func (n FilterNode[T]) validate(path map[*FilterOperator[T]]bool, at string) error {
	switch {
	case n.Leaf != nil && n.Operator != nil:
		return fmt.Errorf("%w: filter node %s is both a leaf and an operator", ErrInvalidRequest, at)
	case n.Leaf != nil:
		if v, ok := any(n.Leaf).(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("filter node %s: %w", at, err)
			}
		}
		return nil
	case n.Operator == nil:
		return fmt.Errorf("%w: filter node %s is empty", ErrInvalidRequest, at)
	}

	if path[n.Operator] {
		return fmt.Errorf("%w: filter node %s refers back to one of its ancestors", ErrInvalidRequest, at)
	}
	path[n.Operator] = true
	defer delete(path, n.Operator)

	name, children, err := n.Operator.active()
	if err != nil {
		return fmt.Errorf("filter node %s: %w", at, err)
	}
	for i, child := range children {
		if err := child.validate(path, fmt.Sprintf("%s.%s[%d]", at, name, i)); err != nil {
			return err
		}
	}
	return nil
}

func (o *FilterOperator[T]) active() (string, []FilterNode[T], error) {
	set := 0
	var name string
	var children []FilterNode[T]
	if o.And != nil {
		set++
		name, children = "and", o.And
	}
	if o.Or != nil {
		set++
		name, children = "or", o.Or
	}
	if o.Not != nil {
		set++
		name, children = "not", o.Not
	}
	if set != 1 {
		return "", nil, fmt.Errorf("%w: operator must have exactly one of and, or, not", ErrInvalidRequest)
	}
	if len(children) == 0 {
		return "", nil, fmt.Errorf("%w: operator %q needs at least one child", ErrInvalidRequest, name)
	}
	return name, children, nil
}

// MarshalJSON func
func (n FilterNode[T]) MarshalJSON() ([]byte, error) {
	if n.Leaf != nil {
		return json.Marshal(*n.Leaf)
	}
	if n.Operator == nil {
		return nil, errors.New("marshal filter node: empty node")
	}

	name, children, err := n.Operator.active()
	if err != nil {
		return nil, err
	}

	var value interface{} = children
	if name == "not" && len(children) == 1 {
		value = children[0]
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":"operator","`)
	buf.WriteString(name)
	buf.WriteString(`":`)
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	buf.Write(encoded)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON func
func (n *FilterNode[T]) UnmarshalJSON(data []byte) error {
	const target = "FilterNode"

	var probe struct {
		Type string          `json:"type"`
		And  json.RawMessage `json:"and"`
		Or   json.RawMessage `json:"or"`
		Not  json.RawMessage `json:"not"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return &DecodeError{Target: target, Reason: "malformed json", Err: err}
	}
	if probe.Type == "" {
		return missingField(target, "type")
	}

	if probe.Type != filterOperatorType {
		var leaf T
		if err := json.Unmarshal(data, &leaf); err != nil {
			return err
		}
		*n = FilterNode[T]{Leaf: &leaf}
		return nil
	}

	op := &FilterOperator[T]{}
	set := 0
	if len(probe.And) > 0 {
		set++
		children, err := decodeFilterChildren[T](probe.And, "and")
		if err != nil {
			return err
		}
		op.And = children
	}
	if len(probe.Or) > 0 {
		set++
		children, err := decodeFilterChildren[T](probe.Or, "or")
		if err != nil {
			return err
		}
		op.Or = children
	}
	if len(probe.Not) > 0 {
		set++
		children, err := decodeFilterChildren[T](probe.Not, "not")
		if err != nil {
			return err
		}
		op.Not = children
	}
	if set != 1 {
		return &DecodeError{Target: target, Reason: "operator must have exactly one of and, or, not"}
	}

	*n = FilterNode[T]{Operator: op}
	return nil
}

// decodeFilterChildren accepts an array of nodes, or a single node object.
func decodeFilterChildren[T any](raw json.RawMessage, name string) ([]FilterNode[T], error) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return nil, &DecodeError{Target: "FilterNode", Field: name, Reason: "operator children must not be null"}
	}

	var children []FilterNode[T]
	if raw[0] == '{' {
		var child FilterNode[T]
		if err := json.Unmarshal(raw, &child); err != nil {
			return nil, err
		}
		children = []FilterNode[T]{child}
	} else if err := json.Unmarshal(raw, &children); err != nil {
		return nil, err
	}

	if len(children) == 0 {
		return nil, &DecodeError{Target: "FilterNode", Field: name, Reason: "operator needs at least one child"}
	}
	return children, nil
}
