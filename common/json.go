package common

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// GetFloat returns the number found at keys. Exchanges send numbers either
// bare or quoted, both are accepted.
func GetFloat(data []byte, keys ...string) (float64, error) {
	v, dt, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return 0, fmt.Errorf("%w: field %s: %v", ErrInvalidData, strings.Join(keys, "."), err)
	}
	switch dt {
	case jsonparser.String, jsonparser.Number:
		return FloatFromString(string(v))
	default:
		return 0, fmt.Errorf("%w: field %s is %s not a number", ErrInvalidData, strings.Join(keys, "."), dt)
	}
}

// GetOptionalFloat is GetFloat for fields that may be absent or null. ok is
// false when there is no value.
func GetOptionalFloat(data []byte, keys ...string) (f float64, ok bool, err error) {
	_, dt, _, err := jsonparser.Get(data, keys...)
	if err != nil || dt == jsonparser.Null {
		return 0, false, nil
	}
	f, err = GetFloat(data, keys...)
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}

// GetID returns an identifier that may be encoded as a string or a number
func GetID(data []byte, keys ...string) (string, error) {
	v, dt, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return "", fmt.Errorf("%w: field %s: %v", ErrInvalidData, strings.Join(keys, "."), err)
	}
	switch dt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return "", fmt.Errorf("%w: field %s: %v", ErrInvalidData, strings.Join(keys, "."), err)
		}
		if s == "" {
			return "", fmt.Errorf("%w: field %s is empty", ErrInvalidData, strings.Join(keys, "."))
		}
		return s, nil
	case jsonparser.Number:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: field %s is %s not an identifier", ErrInvalidData, strings.Join(keys, "."), dt)
	}
}

// GetStrings collects the string elements of the array at keys in order
func GetStrings(data []byte, keys ...string) ([]string, error) {
	var (
		out     []string
		elemErr error
	)
	_, err := jsonparser.ArrayEach(data, func(v []byte, dt jsonparser.ValueType, _ int, _ error) {
		if elemErr != nil {
			return
		}
		if dt != jsonparser.String {
			elemErr = fmt.Errorf("%w: field %s holds %s, expected string", ErrInvalidData, strings.Join(keys, "."), dt)
			return
		}
		s, err := jsonparser.ParseString(v)
		if err != nil {
			elemErr = fmt.Errorf("%w: field %s: %v", ErrInvalidData, strings.Join(keys, "."), err)
			return
		}
		out = append(out, s)
	}, keys...)
	if err != nil {
		return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidData, strings.Join(keys, "."), err)
	}
	if elemErr != nil {
		return nil, elemErr
	}
	return out, nil
}

// GetPriceLevels reads an array of [price, amount, ...] entries. Extra
// elements such as timestamps are ignored.
func GetPriceLevels(data []byte, keys ...string) ([][2]float64, error) {
	out := [][2]float64{}
	var elemErr error
	_, err := jsonparser.ArrayEach(data, func(v []byte, dt jsonparser.ValueType, _ int, _ error) {
		if elemErr != nil {
			return
		}
		if dt != jsonparser.Array {
			elemErr = fmt.Errorf("%w: field %s holds %s, expected array", ErrInvalidData, strings.Join(keys, "."), dt)
			return
		}
		price, err := GetFloat(v, "[0]")
		if err != nil {
			elemErr = err
			return
		}
		amount, err := GetFloat(v, "[1]")
		if err != nil {
			elemErr = err
			return
		}
		out = append(out, [2]float64{price, amount})
	}, keys...)
	if err != nil {
		return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidData, strings.Join(keys, "."), err)
	}
	if elemErr != nil {
		return nil, elemErr
	}
	return out, nil
}
