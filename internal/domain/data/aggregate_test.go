package data

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
)

func decode(t *testing.T, input string) []jsonvalue.Value {
	t.Helper()
	var values []jsonvalue.Value
	if err := json.Unmarshal([]byte(input), &values); err != nil {
		t.Fatalf("failed to decode %s: %v", input, err)
	}
	return values
}

func TestAggregateScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Result
	}{
		{"mixed", `["a", "b", 1, 2, 3]`, Result{StringCount: 2, IntegerSum: 6}},
		{"empty", `[]`, Result{}},
		{"ignored kinds", `[true, null, {"x":1}, [1,2]]`, Result{}},
		{"negative", `[-5, "x", 2]`, Result{StringCount: 1, IntegerSum: -3}},
		{"max int", `[9223372036854775807]`, Result{IntegerSum: math.MaxInt64}},
		{"min int", `[-9223372036854775808]`, Result{IntegerSum: math.MinInt64}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Aggregate(decode(t, tc.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestAggregateRejectsFractionalNumber(t *testing.T) {
	_, err := Aggregate(decode(t, `["a", 2, 1.5]`))
	if !errors.Is(err, apperrors.ErrInvalidNumericElement) {
		t.Fatalf("expected ErrInvalidNumericElement, got %v", err)
	}
	if !errors.Is(err, jsonvalue.ErrNotInteger) {
		t.Fatalf("expected ErrNotInteger in chain, got %v", err)
	}

	var elemErr *apperrors.ElementError
	if !errors.As(err, &elemErr) {
		t.Fatalf("expected ElementError, got %T", err)
	}
	if elemErr.Index != 2 || elemErr.Value != "1.5" {
		t.Fatalf("unexpected element error: %+v", elemErr)
	}
}

func TestAggregateRejectsOutOfRangeElement(t *testing.T) {
	_, err := Aggregate(decode(t, `[18446744073709551616]`))
	if !errors.Is(err, apperrors.ErrInvalidNumericElement) {
		t.Fatalf("expected ErrInvalidNumericElement, got %v", err)
	}
	if !errors.Is(err, jsonvalue.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange in chain, got %v", err)
	}
}

func TestAggregateOverflow(t *testing.T) {
	for _, input := range []string{
		`[9223372036854775807, 1]`,
		`[-9223372036854775808, -1]`,
		`[9223372036854775807, 9223372036854775807, 9223372036854775807]`,
	} {
		_, err := Aggregate(decode(t, input))
		if !errors.Is(err, apperrors.ErrIntegerOverflow) {
			t.Fatalf("%s: expected ErrIntegerOverflow, got %v", input, err)
		}
	}
}

func TestAggregateSumIsOrderIndependent(t *testing.T) {
	orders := []string{
		`[9223372036854775807, 1, -1]`,
		`[1, 9223372036854775807, -1]`,
		`[-1, 1, 9223372036854775807]`,
	}
	for _, input := range orders {
		got, err := Aggregate(decode(t, input))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", input, err)
		}
		if got.IntegerSum != math.MaxInt64 {
			t.Fatalf("%s: expected max int64, got %d", input, got.IntegerSum)
		}
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	values := decode(t, `["x", 7, "y", -2, null]`)
	first, err := Aggregate(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if first.StringCount > len(values) {
		t.Fatalf("string count %d exceeds input length %d", first.StringCount, len(values))
	}
}

func TestAccumulatorChunksMatchSinglePass(t *testing.T) {
	values := decode(t, `["a", 1, "b", 2, 3, "c", true, 4]`)

	acc := NewAccumulator()
	for start := 0; start < len(values); start += 3 {
		end := start + 3
		if end > len(values) {
			end = len(values)
		}
		if err := acc.AddAll(values[start:end]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	chunked, err := acc.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	whole, _ := Aggregate(values)
	if chunked != whole {
		t.Fatalf("expected %+v, got %+v", whole, chunked)
	}
	if acc.Count() != len(values) {
		t.Fatalf("expected count %d, got %d", len(values), acc.Count())
	}
	kinds := acc.KindCounts()
	if kinds[jsonvalue.KindString] != 3 || kinds[jsonvalue.KindNumber] != 4 || kinds[jsonvalue.KindBool] != 1 {
		t.Fatalf("unexpected kind counts: %v", kinds)
	}
}
