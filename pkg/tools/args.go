package tools

import "fmt"

// Args is the argument map of a tool request. Values arrive as decoded YAML
// or JSON scalars; the typed accessors normalize the numeric representations
// both decoders produce.
type Args map[string]any

// String returns a required string argument.
func (a Args) String(key string) (string, *Error) {
	v, ok := a[key]
	if !ok {
		return "", invalidArgf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArgf("argument %q must be a string, got %T", key, v)
	}
	if s == "" {
		return "", invalidArgf("argument %q must not be empty", key)
	}
	return s, nil
}

// OptString returns an optional string argument, defaulting to empty.
func (a Args) OptString(key string) (string, *Error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArgf("argument %q must be a string, got %T", key, v)
	}
	return s, nil
}

// Float returns a required numeric argument.
func (a Args) Float(key string) (float64, *Error) {
	v, ok := a[key]
	if !ok {
		return 0, invalidArgf("missing required argument %q", key)
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, invalidArgf("argument %q must be a number, got %T", key, v)
	}
	return f, nil
}

// Int returns a required integer argument.
func (a Args) Int(key string) (int, *Error) {
	f, terr := a.Float(key)
	if terr != nil {
		return 0, terr
	}
	i := int(f)
	if float64(i) != f {
		return 0, invalidArgf("argument %q must be an integer", key)
	}
	return i, nil
}

// OptInt returns an optional integer argument with a default.
func (a Args) OptInt(key string, def int) (int, *Error) {
	if _, ok := a[key]; !ok {
		return def, nil
	}
	return a.Int(key)
}

// Bool returns a required boolean argument.
func (a Args) Bool(key string) (bool, *Error) {
	v, ok := a[key]
	if !ok {
		return false, invalidArgf("missing required argument %q", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalidArgf("argument %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

// OptBool returns an optional boolean argument with a default.
func (a Args) OptBool(key string, def bool) (bool, *Error) {
	if _, ok := a[key]; !ok {
		return def, nil
	}
	return a.Bool(key)
}

// StringList returns a required list-of-strings argument.
func (a Args) StringList(key string) ([]string, *Error) {
	v, ok := a[key]
	if !ok {
		return nil, invalidArgf("missing required argument %q", key)
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, invalidArgf("argument %q must be a list of strings", key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalidArgf("argument %q must be a list of strings, got %T", key, v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// Clone returns a deep-enough copy of the args for the call log: top-level
// keys are copied, nested values are shared but never mutated by handlers.
func (a Args) Clone() Args {
	if a == nil {
		return nil
	}
	cp := make(Args, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}
