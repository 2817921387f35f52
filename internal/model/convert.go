package model

import "fmt"

// This file converts loosely-typed values (as they arrive from OSC
// argument coercion or JSON decoding) into the fixed-shape values a
// Segment parameter setter expects, reporting a validation error on
// shape mismatch rather than guessing.

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, error) {
	f, ok := toFloat64(v)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	return f, nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	case float64:
		return b != 0, nil
	}
	return false, fmt.Errorf("expected a boolean, got %T", v)
}

// toSlice normalizes []any, []int and []float64 into a []any so the
// fixed-length converters below can share one code path.
func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []int:
		out := make([]any, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

func toIntArrayN(v any, n int) ([]int, error) {
	raw, ok := toSlice(v)
	if !ok {
		return nil, fmt.Errorf("expected a list of %d integers, got %T", n, v)
	}
	if len(raw) != n {
		return nil, fmt.Errorf("expected a list of %d integers, got %d elements", n, len(raw))
	}
	out := make([]int, n)
	for i, elem := range raw {
		f, ok := toFloat64(elem)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a number, got %T", i, elem)
		}
		out[i] = int(f)
	}
	return out, nil
}

func toFloatArrayN(v any, n int) ([]float64, error) {
	raw, ok := toSlice(v)
	if !ok {
		return nil, fmt.Errorf("expected a list of %d numbers, got %T", n, v)
	}
	if len(raw) != n {
		return nil, fmt.Errorf("expected a list of %d numbers, got %d elements", n, len(raw))
	}
	out := make([]float64, n)
	for i, elem := range raw {
		f, ok := toFloat64(elem)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a number, got %T", i, elem)
		}
		out[i] = f
	}
	return out, nil
}

func toIntArray3(v any) ([3]int, error) {
	s, err := toIntArrayN(v, 3)
	if err != nil {
		return [3]int{}, err
	}
	return [3]int{s[0], s[1], s[2]}, nil
}

func toIntArray4(v any) ([4]int, error) {
	s, err := toIntArrayN(v, 4)
	if err != nil {
		return [4]int{}, err
	}
	return [4]int{s[0], s[1], s[2], s[3]}, nil
}

func toIntArray5(v any) ([5]int, error) {
	s, err := toIntArrayN(v, 5)
	if err != nil {
		return [5]int{}, err
	}
	return [5]int{s[0], s[1], s[2], s[3], s[4]}, nil
}

func toFloatArray4(v any) ([4]float64, error) {
	s, err := toFloatArrayN(v, 4)
	if err != nil {
		return [4]float64{}, err
	}
	return [4]float64{s[0], s[1], s[2], s[3]}, nil
}

func toFloatPair(v any) (lo, hi float64, err error) {
	s, err := toFloatArrayN(v, 2)
	if err != nil {
		return 0, 0, err
	}
	return s[0], s[1], nil
}
