package models

import (
	"fmt"
	"strings"
	"time"
)

// OperationKind is the closed set of arithmetic operators a node may apply.
type OperationKind string

const (
	KindAdd      OperationKind = "ADD"
	KindSubtract OperationKind = "SUBTRACT"
	KindMultiply OperationKind = "MULTIPLY"
	KindDivide   OperationKind = "DIVIDE"
)

// ParseOperationKind maps a request string onto the closed enumeration.
// Matching is case-insensitive; anything outside the four kinds is rejected.
func ParseOperationKind(s string) (OperationKind, error) {
	switch OperationKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindAdd:
		return KindAdd, nil
	case KindSubtract:
		return KindSubtract, nil
	case KindMultiply:
		return KindMultiply, nil
	case KindDivide:
		return KindDivide, nil
	default:
		return "", fmt.Errorf("unrecognized operation kind %q", s)
	}
}

// Operation is one node of a discussion's computation tree. ParentID is
// nil for root operations, which apply directly to the discussion's
// starting number. All fields are immutable after creation; Result is
// computed once from the parent value and never recomputed.
type Operation struct {
	ID           string        `json:"id" db:"id"`
	DiscussionID string        `json:"discussion_id" db:"discussion_id"`
	ParentID     *string       `json:"parent_id" db:"parent_id"` // NULL = applies to the starting number
	Kind         OperationKind `json:"operation_type" db:"operation_type"`
	Operand      float64       `json:"operand" db:"operand"`
	Result       float64       `json:"result" db:"result"`
	AuthorID     string        `json:"author_id" db:"author_id"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// OperationDetail is the presentation shape for single-operation reads:
// the node with its parent, direct children (oldest-first) and owning
// discussion attached.
type OperationDetail struct {
	Operation
	Parent     *Operation  `json:"parent,omitempty"`
	Children   []Operation `json:"children"`
	Discussion *Discussion `json:"discussion,omitempty"`
}
