package rule

import "reflect"

// CloneRule returns an independent copy of r so settings can be applied
// without touching the registered instance. Configurable rules are rebuilt
// from a zero value with their DefaultSettings; other pointer rules are
// copied field by field.
func CloneRule(r Rule) Rule {
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Ptr {
		return r
	}

	if c, ok := r.(Configurable); ok {
		clone := reflect.New(rv.Elem().Type()).Interface().(Rule)
		if cc, ok := clone.(Configurable); ok {
			_ = cc.ApplySettings(c.DefaultSettings())
		}
		return clone
	}

	newPtr := reflect.New(rv.Elem().Type())
	newPtr.Elem().Set(rv.Elem())
	return newPtr.Interface().(Rule)
}
