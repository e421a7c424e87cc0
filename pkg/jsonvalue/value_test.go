package jsonvalue

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestUnmarshalClassifiesKinds(t *testing.T) {
	var values []Value
	input := `["a", 1, -2.5, true, false, null, {"x":1}, [1,2]]`
	if err := json.Unmarshal([]byte(input), &values); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Kind{KindString, KindNumber, KindNumber, KindBool, KindBool, KindNull, KindObject, KindArray}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i, k := range want {
		if values[i].Kind() != k {
			t.Fatalf("value %d: expected %s, got %s", i, k, values[i].Kind())
		}
	}
	if values[0].Str() != "a" {
		t.Fatalf("expected decoded string 'a', got %q", values[0].Str())
	}
}

func TestInt64KeepsFullPrecision(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`9223372036854775807`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := v.Int64()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 9223372036854775807 {
		t.Fatalf("expected max int64, got %d", n)
	}
}

func TestInt64Rejections(t *testing.T) {
	cases := []struct {
		literal string
		want    error
	}{
		{"1.5", ErrNotInteger},
		{"1.0", ErrNotInteger},
		{"1e3", ErrNotInteger},
		{"9223372036854775808", ErrOutOfRange},
		{"-9223372036854775809", ErrOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.literal, func(t *testing.T) {
			_, err := Number(tc.literal).Int64()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMarshalPreservesLiteral(t *testing.T) {
	values := []Value{String("x"), Number("12345678901234567"), Null(), Raw(KindObject, []byte(`{"a":1}`))}
	out, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `["x",12345678901234567,null,{"a":1}]` {
		t.Fatalf("unexpected encoding: %s", out)
	}
}
