// Package compute is the result computation engine: a pure mapping from
// (previous value, operation kind, operand) to the node's stored result.
package compute

import (
	"fmt"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
)

// Apply derives a node's result from its parent value under standard
// IEEE-754 float64 arithmetic. It has no side effects and is deterministic:
// stored results can always be reproduced by replaying the chain.
func Apply(previous float64, kind models.OperationKind, operand float64) (float64, error) {
	switch kind {
	case models.KindAdd:
		return previous + operand, nil
	case models.KindSubtract:
		return previous - operand, nil
	case models.KindMultiply:
		return previous * operand, nil
	case models.KindDivide:
		if operand == 0 {
			return 0, fmt.Errorf("division by zero: %w", domain.ErrInvalidOperation)
		}
		return previous / operand, nil
	default:
		return 0, fmt.Errorf("unrecognized operation kind %q: %w", kind, domain.ErrInvalidOperation)
	}
}
