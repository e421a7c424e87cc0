package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var (
	ErrNotInteger = errors.New("number is not an integer")
	ErrOutOfRange = errors.New("number out of int64 range")
)

// Value is a single JSON value tagged with its kind. The raw encoding is kept
// so that numbers are never rounded through float64.
type Value struct {
	kind Kind
	raw  json.RawMessage
	str  string
}

func String(s string) Value {
	raw, _ := json.Marshal(s)
	return Value{kind: KindString, raw: raw, str: s}
}

// Number builds a number value from its JSON literal, e.g. "42" or "1.5".
func Number(literal string) Value {
	return Value{kind: KindNumber, raw: json.RawMessage(literal)}
}

func Int(n int64) Value {
	return Number(strconv.FormatInt(n, 10))
}

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, raw: json.RawMessage("true")}
	}
	return Value{kind: KindBool, raw: json.RawMessage("false")}
}

func Null() Value {
	return Value{kind: KindNull, raw: json.RawMessage("null")}
}

// Raw wraps an already encoded composite value.
func Raw(kind Kind, raw []byte) Value {
	return Value{kind: kind, raw: append(json.RawMessage(nil), raw...)}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsString() bool {
	return v.kind == KindString
}

func (v Value) IsNumber() bool {
	return v.kind == KindNumber
}

// Str returns the decoded string for string values and "" otherwise.
func (v Value) Str() string {
	return v.str
}

// Literal returns the JSON encoding of the value.
func (v Value) Literal() string {
	if len(v.raw) == 0 {
		return "null"
	}
	return string(v.raw)
}

// Int64 interprets a number value as a signed 64-bit integer. Literals with a
// fraction or exponent part are rejected even when integral (1.0, 1e3).
func (v Value) Int64() (int64, error) {
	if v.kind != KindNumber {
		return 0, ErrNotInteger
	}
	lit := string(v.raw)
	if strings.ContainsAny(lit, ".eE") {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrOutOfRange
		}
		return 0, ErrNotInteger
	}
	return n, nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("jsonvalue: empty input")
	}

	raw := append(json.RawMessage(nil), b...)
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, raw: raw, str: s}
	case 't', 'f':
		*v = Value{kind: KindBool, raw: raw}
	case 'n':
		*v = Value{kind: KindNull, raw: raw}
	case '[':
		*v = Value{kind: KindArray, raw: raw}
	case '{':
		*v = Value{kind: KindObject, raw: raw}
	default:
		if !json.Valid(b) {
			return errors.New("jsonvalue: invalid number literal")
		}
		*v = Value{kind: KindNumber, raw: raw}
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}
