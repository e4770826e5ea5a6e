package rootfind

import (
	"errors"
	"math"
	"testing"
)

func TestNewton(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
		want    float64
		wantErr bool
	}{
		{
			name: "square root of two",
			problem: Problem{
				F:             func(x float64) float64 { return x*x - 2 },
				Deriv:         func(x float64) float64 { return 2 * x },
				Guess:         1.0,
				Tolerance:     1e-10,
				MaxIterations: 50,
			},
			want: math.Sqrt2,
		},
		{
			name: "exponential crossing",
			problem: Problem{
				F:             func(x float64) float64 { return math.Exp(x) - 5 },
				Deriv:         func(x float64) float64 { return math.Exp(x) },
				Guess:         0.0,
				Tolerance:     1e-10,
				MaxIterations: 50,
			},
			want: math.Log(5),
		},
		{
			name: "budget exhausted",
			problem: Problem{
				F:             func(x float64) float64 { return x*x - 2 },
				Deriv:         func(x float64) float64 { return 2 * x },
				Guess:         1000.0,
				Tolerance:     1e-15,
				MaxIterations: 3,
			},
			wantErr: true,
		},
		{
			name: "zero derivative diverges",
			problem: Problem{
				F:             func(x float64) float64 { return 1.0 },
				Deriv:         func(x float64) float64 { return 0.0 },
				Guess:         1.0,
				Tolerance:     1e-10,
				MaxIterations: 50,
			},
			wantErr: true,
		},
		{
			name: "invalid tolerance",
			problem: Problem{
				F:             func(x float64) float64 { return x },
				Deriv:         func(x float64) float64 { return 1 },
				Guess:         1.0,
				Tolerance:     0,
				MaxIterations: 50,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Newton(tt.problem)
			if tt.wantErr {
				if !errors.Is(err, ErrConvergence) {
					t.Fatalf("expected ErrConvergence, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Newton() = %.12f, want %.12f", got, tt.want)
			}
		})
	}
}
