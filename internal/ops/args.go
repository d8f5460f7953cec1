package ops

import "fmt"

// Args is the named-argument configuration bag an operator is
// constructed from. Recognized keys are documented on the operator
// constructors; unrecognized keys are ignored, but a recognized key
// with a value of the wrong type or an unaccepted value fails
// construction.
type Args map[string]any

// argReader reads typed values out of an Args bag, recording the first
// type error it encounters.
type argReader struct {
	args Args
	err  error
}

// str returns the string value for key, or def when the key is absent.
func (r *argReader) str(key, def string) string {
	v, ok := r.args[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		if r.err == nil {
			r.err = fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidArg, key, v)
		}
		return def
	}
	return s
}

// num returns the int value for key, or def when the key is absent.
func (r *argReader) num(key string, def int) int {
	v, ok := r.args[key]
	if !ok {
		return def
	}
	n, ok := v.(int)
	if !ok {
		if r.err == nil {
			r.err = fmt.Errorf("%w: %q must be an int, got %T", ErrInvalidArg, key, v)
		}
		return def
	}
	return n
}
