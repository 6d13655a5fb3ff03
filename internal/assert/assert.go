package assert

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// Equal verifies that two objects are equal.
func Equal[T any](t *testing.T, a T, b T) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("%v != %v", a, b)
	}
}

// NotEqual verifies that two objects are not equal.
func NotEqual[T any](t *testing.T, a T, b T) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Fatalf("%v == %v", a, b)
	}
}

// IsNil verifies that the value is nil.
func IsNil(t *testing.T, v any) {
	t.Helper()
	if !isNil(v) {
		t.Fatalf("%v is not nil", v)
	}
}

// NotNil verifies that the value is not nil.
func NotNil(t *testing.T, v any) {
	t.Helper()
	if isNil(v) {
		t.Fatal("value is nil")
	}
}

// True verifies that the condition holds.
func True(t *testing.T, condition bool) {
	t.Helper()
	if !condition {
		t.Fatal("condition is false")
	}
}

// False verifies that the condition does not hold.
func False(t *testing.T, condition bool) {
	t.Helper()
	if condition {
		t.Fatal("condition is true")
	}
}

// ErrorIs checks whether any error in err's tree matches target.
func ErrorIs(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error %v is not %v", err, target)
	}
}

// ErrorContains checks whether the error message contains the substring.
func ErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error is nil, expected %q", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("error %q does not contain %q", err, substr)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return value.IsNil()
	}
	return false
}
