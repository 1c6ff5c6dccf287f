package module

import "reflect"

// PortSet is whatever a module returns from Ports, usually a struct of interfaces
type PortSet = any

// PortsOf finds a T in m's port bundle without the registry
// the bundle matches when it is a T itself, or when an exported field of a
// struct (or pointer to struct) bundle holds a non-nil T
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}
	return find[T](m.Ports())
}

func find[T any](p any) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if f.Kind() == reflect.Interface && f.IsNil() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf panics naming the module when no T is found
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " exposes no " + reflect.TypeFor[T]().String())
	}
	return v
}

// Each calls fn, in order, for every module whose ports carry a T
func Each[T any](mods []Module, fn func(Module, T)) {
	for _, m := range mods {
		if v, ok := PortsOf[T](m); ok {
			fn(m, v)
		}
	}
}
