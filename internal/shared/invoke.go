package shared

import (
	"fmt"
	"reflect"
)

// Invoke calls fn with args. The common handler shapes are called directly;
// any other func is called through reflection with args converted to its
// parameter types. It reports whether fn was callable.
func Invoke(fn any, args ...any) (bool, error) {
	switch h := fn.(type) {
	case nil:
		return false, nil
	case func():
		h()
		return true, nil
	case func(...any):
		h(args...)
		return true, nil
	case func(any):
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		h(arg)
		return true, nil
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return false, nil
	}
	t := v.Type()
	in := make([]reflect.Value, 0, len(args))
	for i := 0; i < t.NumIn(); i++ {
		pt := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			elem := pt.Elem()
			for _, a := range args[min(i, len(args)):] {
				cv, err := convertArg(a, elem)
				if err != nil {
					return false, err
				}
				in = append(in, cv)
			}
			v.Call(in)
			return true, nil
		}
		var a any
		if i < len(args) {
			a = args[i]
		}
		cv, err := convertArg(a, pt)
		if err != nil {
			return false, err
		}
		in = append(in, cv)
	}
	v.Call(in)
	return true, nil
}

func convertArg(a any, to reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(to), nil
	}
	av := reflect.ValueOf(a)
	switch {
	case av.Type().AssignableTo(to):
		return av, nil
	case av.Type().ConvertibleTo(to):
		return av.Convert(to), nil
	}
	return reflect.Value{}, fmt.Errorf("argument of type %s is not assignable to %s", av.Type(), to)
}
