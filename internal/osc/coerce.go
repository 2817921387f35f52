package osc

import (
	"encoding/json"
	"fmt"

	"github.com/tapelight/ledengine/internal/model"
)

// CoerceParam turns a decoded OSC argument list for a named parameter
// into zero or more ParameterUpdates. A JSON-encoded string is parsed
// first; a native list is treated as color indices when the param is
// "color"; a dict dispatches by the grouped-key schemas below;
// anything else becomes a direct update of the same name.
func CoerceParam(param string, args []any) ([]model.ParameterUpdate, error) {
	val, err := scalarOrStructured(args)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case map[string]any:
		return dictUpdates(param, v)
	case []any:
		if param == "color" {
			return []model.ParameterUpdate{{Name: model.ParamColor, Value: v}}, nil
		}
	}

	return []model.ParameterUpdate{{Name: model.ParamName(param), Value: val}}, nil
}

// scalarOrStructured collapses a decoded OSC argument list into a
// single coercion value. A lone JSON string is parsed into its native
// form (object, array, number, bool, string); multiple scalar args
// (the way some clients send a flat int list instead of JSON) collapse
// into a []any of those scalars; a single scalar passes through as-is.
func scalarOrStructured(args []any) (any, error) {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				return parsed, nil
			}
			return s, nil
		}
		return normalizeScalar(args[0]), nil
	}

	list := make([]any, len(args))
	for i, a := range args {
		list[i] = normalizeScalar(a)
	}
	return list, nil
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int32:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// dictUpdates expands a grouped dict payload for param into a sequence
// of ParameterUpdates, applying keys in a fixed, documented order so
// that a client sending several related keys in one dict gets
// deterministic results regardless of the map iteration order.
func dictUpdates(param string, dict map[string]any) ([]model.ParameterUpdate, error) {
	var updates []model.ParameterUpdate

	switch param {
	case "color":
		if v, ok := dict["colors"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamColor, Value: v})
		}
		if v, ok := dict["speed"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamMoveSpeed, Value: v})
		}
		if v, ok := dict["gradient"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamGradient, Value: v})
		}

	case "position":
		if v, ok := dict["initial_position"]; ok {
			updates = append(updates,
				model.ParameterUpdate{Name: model.ParamInitialPosition, Value: v},
				model.ParameterUpdate{Name: model.ParamCurrentPosition, Value: v},
			)
		}
		if v, ok := dict["speed"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamMoveSpeed, Value: v})
		}
		if v, ok := dict["range"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamMoveRange, Value: v})
		}
		if v, ok := dict["interval"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamPositionInterval, Value: v})
		}

	case "span":
		if v, ok := dict["span"]; ok {
			n, err := toFloatValue(v)
			if err != nil {
				return nil, fmt.Errorf("span: %w", err)
			}
			third := n / 3
			updates = append(updates, model.ParameterUpdate{
				Name:  model.ParamLength,
				Value: []any{third, third, third},
			})
		}
		if v, ok := dict["range"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamSpanRange, Value: v})
		}
		if v, ok := dict["speed"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamSpanSpeed, Value: v})
		}
		if v, ok := dict["interval"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamSpanInterval, Value: v})
		}
		if v, ok := dict["gradient_colors"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamGradientColors, Value: v})
		}
		if v, ok := dict["fade"]; ok {
			updates = append(updates, model.ParameterUpdate{Name: model.ParamFade, Value: v})
		}

	default:
		// A dict payload for a param with no grouped schema is still
		// passed straight through as a named update; Segment.Apply
		// rejects the shape mismatch as a validation error, same as any
		// other malformed write.
		updates = append(updates, model.ParameterUpdate{Name: model.ParamName(param), Value: dict})
	}

	return updates, nil
}

// toFlatIntList coerces a palette-update argument list into a flat
// []int of RGB triples. Args may arrive either as a run of OSC
// int/float scalars or as a single JSON-array string.
func toFlatIntList(args []any) ([]int, error) {
	val, err := scalarOrStructured(args)
	if err != nil {
		return nil, err
	}

	list, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a flat RGB list, got %T", val)
	}

	out := make([]int, len(list))
	for i, elem := range list {
		n, err := toFloatValue(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = int(n)
	}
	return out, nil
}

func toFloatValue(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
