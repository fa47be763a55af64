package request

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	integerType = reflect.TypeOf(Integer(0))
	dateType    = reflect.TypeOf(Date{})
)

// Integer accepts a JSON number or a numeric string. Fractions are truncated.
// Values outside the 32-bit column range are rejected.
type Integer int

func (i *Integer) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		*i = Integer(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= math.MinInt32 && f < math.MaxInt32+1 {
		*i = Integer(int32(f))
		return nil
	}

	return &json.UnmarshalTypeError{Value: raw, Type: integerType}
}

// Date is a civil date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: dateType}
	}

	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: raw, Type: dateType}
	}

	d.Time = parsed
	return nil
}

// IsDateType reports whether a decode error was raised for a Date field.
func IsDateType(t reflect.Type) bool {
	return t == dateType || t == reflect.PointerTo(dateType)
}

// IsIntegerType reports whether a decode error was raised for an Integer field.
func IsIntegerType(t reflect.Type) bool {
	return t == integerType || t == reflect.PointerTo(integerType)
}
