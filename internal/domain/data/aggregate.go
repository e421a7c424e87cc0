package data

import (
	"fmt"
	"math/bits"

	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
)

type Result struct {
	StringCount int   `json:"string_len"`
	IntegerSum  int64 `json:"int_sum"`
}

// Accumulator folds values one at a time. The integer sum is kept as a
// 128-bit two's complement pair so that overflow is decided on the exact
// total, independent of element order.
type Accumulator struct {
	count   int
	strings int
	numbers int
	kinds   [jsonvalue.KindObject + 1]int
	hi      int64
	lo      uint64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add classifies v and folds it in. On error the accumulator is left
// unchanged apart from the position counter.
func (a *Accumulator) Add(v jsonvalue.Value) error {
	index := a.count
	a.count++

	switch v.Kind() {
	case jsonvalue.KindString:
		a.strings++
	case jsonvalue.KindNumber:
		n, err := v.Int64()
		if err != nil {
			return apperrors.NewElementError(index, v.Literal(),
				fmt.Errorf("%w: %w", apperrors.ErrInvalidNumericElement, err))
		}
		a.addInt(n)
		a.numbers++
	}

	if k := v.Kind(); int(k) < len(a.kinds) {
		a.kinds[k]++
	}
	return nil
}

func (a *Accumulator) AddAll(values []jsonvalue.Value) error {
	for _, v := range values {
		if err := a.Add(v); err != nil {
			return err
		}
	}
	return nil
}

func (a *Accumulator) addInt(n int64) {
	var carry uint64
	a.lo, carry = bits.Add64(a.lo, uint64(n), 0)
	a.hi += (n >> 63) + int64(carry)
}

// Count returns how many values have been offered to Add.
func (a *Accumulator) Count() int {
	return a.count
}

// KindCounts reports how many accepted values carried each tag.
func (a *Accumulator) KindCounts() map[jsonvalue.Kind]int {
	out := make(map[jsonvalue.Kind]int, len(a.kinds))
	for k, n := range a.kinds {
		if n > 0 {
			out[jsonvalue.Kind(k)] = n
		}
	}
	return out
}

func (a *Accumulator) Result() (Result, error) {
	sum := int64(a.lo)
	if a.hi != sum>>63 {
		return Result{}, fmt.Errorf("%w: sum of %d integer elements", apperrors.ErrIntegerOverflow, a.numbers)
	}
	return Result{
		StringCount: a.strings,
		IntegerSum:  sum,
	}, nil
}

// Aggregate counts string elements and sums integer elements of values.
// Elements of any other kind are ignored.
func Aggregate(values []jsonvalue.Value) (Result, error) {
	acc := NewAccumulator()
	if err := acc.AddAll(values); err != nil {
		return Result{}, err
	}
	return acc.Result()
}
