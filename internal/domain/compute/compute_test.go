package compute

import (
	"errors"
	"testing"

	"mathboard/internal/domain"
	"mathboard/internal/domain/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		kind     models.OperationKind
		operand  float64
		want     float64
		wantErr  bool
	}{
		{
			name:     "add",
			previous: 42,
			kind:     models.KindAdd,
			operand:  10,
			want:     52,
		},
		{
			name:     "subtract",
			previous: 42,
			kind:     models.KindSubtract,
			operand:  50,
			want:     -8,
		},
		{
			name:     "multiply",
			previous: 42,
			kind:     models.KindMultiply,
			operand:  2,
			want:     84,
		},
		{
			name:     "divide",
			previous: 42,
			kind:     models.KindDivide,
			operand:  7,
			want:     6,
		},
		{
			name:     "divide by zero",
			previous: 5,
			kind:     models.KindDivide,
			operand:  0,
			wantErr:  true,
		},
		{
			name:     "unknown kind",
			previous: 1,
			kind:     models.OperationKind("MODULO"),
			operand:  2,
			wantErr:  true,
		},
		{
			name:     "negative operand",
			previous: 10,
			kind:     models.KindAdd,
			operand:  -4,
			want:     6,
		},
		{
			name:     "multiply by zero is fine",
			previous: 10,
			kind:     models.KindMultiply,
			operand:  0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.previous, tt.kind, tt.operand)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Apply() expected error, got nil")
				}
				if !errors.Is(err, domain.ErrInvalidOperation) {
					t.Errorf("Apply() error = %v, want ErrInvalidOperation", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Stored results must be reproducible bit-for-bit from identical inputs.
func TestApplyDeterministic(t *testing.T) {
	first, err := Apply(1.1, models.KindDivide, 3.3)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	second, err := Apply(1.1, models.KindDivide, 3.3)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Apply() not deterministic: %v != %v", first, second)
	}
}

func TestParseOperationKind(t *testing.T) {
	tests := []struct {
		in      string
		want    models.OperationKind
		wantErr bool
	}{
		{in: "ADD", want: models.KindAdd},
		{in: "subtract", want: models.KindSubtract},
		{in: " Multiply ", want: models.KindMultiply},
		{in: "DIVIDE", want: models.KindDivide},
		{in: "EXPONENT", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := models.ParseOperationKind(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseOperationKind(%q) expected error, got nil", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOperationKind(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOperationKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
