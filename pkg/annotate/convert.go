package annotate

import (
	"fmt"
	"math"
	"reflect"
)

// assign stores an evaluated tag value into dst, converting between the
// evaluator's types (string, int64, float64, bool, []any, nil) and the
// field's declared type.
func assign(dst reflect.Value, value any) error {
	if value == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	converted, err := convertValue(reflect.ValueOf(value), dst.Type())
	if err != nil {
		return err
	}
	dst.Set(converted)
	return nil
}

func convertValue(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	// any, or an interface the value already satisfies
	if src.Type().AssignableTo(to) {
		return src, nil
	}

	// Unwrap values held in interfaces, e.g. elements of []any
	if src.Kind() == reflect.Interface {
		if src.IsNil() {
			return reflect.Zero(to), nil
		}
		return convertValue(src.Elem(), to)
	}

	switch to.Kind() {
	case reflect.String:
		if src.Kind() == reflect.String {
			return src.Convert(to), nil
		}

	case reflect.Bool:
		if src.Kind() == reflect.Bool {
			return src.Convert(to), nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := integerOf(src)
		if !ok {
			break
		}
		out := reflect.New(to).Elem()
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, to)
		}
		out.SetInt(n)
		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := integerOf(src)
		if !ok {
			break
		}
		out := reflect.New(to).Elem()
		if n < 0 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, to)
		}
		out.SetUint(uint64(n))
		return out, nil

	case reflect.Float32, reflect.Float64:
		var f float64
		switch {
		case src.CanFloat():
			f = src.Float()
		case src.CanInt():
			f = float64(src.Int())
		default:
			return reflect.Value{}, mismatch(src, to)
		}
		out := reflect.New(to).Elem()
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%g overflows %s", f, to)
		}
		out.SetFloat(f)
		return out, nil

	case reflect.Slice:
		return convertSlice(src, to)

	case reflect.Pointer:
		elem, err := convertValue(src, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	return reflect.Value{}, mismatch(src, to)
}

// convertSlice converts a list into a slice element by element; a scalar
// becomes a one-element slice
func convertSlice(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
		elem, err := convertValue(src, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.MakeSlice(to, 1, 1)
		out.Index(0).Set(elem)
		return out, nil
	}

	out := reflect.MakeSlice(to, src.Len(), src.Len())
	for i := 0; i < src.Len(); i++ {
		elem, err := convertValue(src.Index(i), to.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(elem)
	}
	return out, nil
}

// integerOf accepts integers and floats with no fractional part
func integerOf(src reflect.Value) (int64, bool) {
	switch {
	case src.CanInt():
		return src.Int(), true
	case src.CanUint():
		u := src.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case src.CanFloat():
		f := src.Float()
		if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func mismatch(src reflect.Value, to reflect.Type) error {
	return fmt.Errorf("cannot use %v (%s) as %s", src.Interface(), src.Type(), to)
}
