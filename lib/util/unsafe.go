package util

import (
	"reflect"
	"unsafe"
)

// UnexportedField reads the unexported field name of *obj as a V. It panics
// if the field does not exist or does not hold a V. Meant for tests that
// check internal state from an external test package.
//
// Based on https://stackoverflow.com/a/60598827
func UnexportedField[V any, T any](obj *T, name string) V {
	field := reflect.ValueOf(obj).Elem().FieldByName(name)
	if !field.IsValid() {
		panic("no field " + name + " in " + reflect.TypeFor[T]().String())
	}
	value := reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	return value.Interface().(V)
}
