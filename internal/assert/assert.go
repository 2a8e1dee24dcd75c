package assert

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func Equal[T comparable](t *testing.T, expected, got T) bool {
	t.Helper()
	return Equalf(t, expected, got, "Items was not equal")
}

func Equalf[T comparable](t *testing.T, expected, got T, format string, args ...any) bool {
	t.Helper()
	if expected != got {
		t.Logf(`
%s
Expected: %v
     Got: %v`, fmt.Sprintf(format, args...), expected, got)
		t.Fail()
		return false
	}
	return true
}

func EqualSlice[T comparable](t *testing.T, expected, got []T) bool {
	t.Helper()
	if len(expected) != len(got) {
		t.Errorf(`Expected %d elements, but got %d`, len(expected), len(got))
		return false
	}

	for i := range len(expected) {
		if !Equalf(t, expected[i], got[i], "Element %d was not equal", i) {
			return false
		}
	}

	return true
}

// EqualDecimal compares monetary amounts by value, ignoring scale.
func EqualDecimal(t *testing.T, expected string, got decimal.Decimal) bool {
	t.Helper()
	want := decimal.RequireFromString(expected)
	if !want.Equal(got) {
		t.Logf(`
Amount was not equal
Expected: %s
     Got: %s`, want, got)
		t.Fail()
		return false
	}
	return true
}

func EqualTime(t *testing.T, expected, got time.Time) bool {
	t.Helper()
	if !expected.Equal(got) {
		t.Logf(`
Time was not equal
Expected: %s
     Got: %s`, expected.Format(time.RFC3339Nano), got.Format(time.RFC3339Nano))
		t.Fail()
		return false
	}
	return true
}

func NotEqual[T comparable](t *testing.T, unexpected, got T) bool {
	t.Helper()
	if unexpected == got {
		t.Logf(`
Items was equal
Expected: %v
     Got: %v`, unexpected, got)
		t.Fail()
		return false
	}
	return true
}

func Nil(t *testing.T, got any) bool {
	t.Helper()
	if got == nil {
		return true
	}
	v := reflect.ValueOf(got)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return true
		}
	}
	t.Logf("Expected nil, but got %v", got)
	t.Fail()
	return false
}

func NotNil(t *testing.T, got any) bool {
	t.Helper()
	if got == nil || reflect.ValueOf(got).IsNil() {
		t.Logf("Expected a value, but got nil")
		t.Fail()
		return false
	}

	return true
}

func Truef(t *testing.T, got bool, format string, args ...any) bool {
	t.Helper()
	if !got {
		t.Logf(format, args...)
		t.Fail()
		return false
	}
	return true
}

func NoError(t *testing.T, got error) bool {
	t.Helper()
	if got != nil {
		t.Logf("Unexpected error: %s", got)
		t.Fail()
		return false
	}

	return true
}

func Error(t *testing.T, got error) bool {
	t.Helper()
	if got == nil {
		t.Logf("Expected error, but got nil")
		t.Fail()
		return false
	}

	return true
}

func ErrorIs(t *testing.T, got, target error) bool {
	t.Helper()
	if !errors.Is(got, target) {
		t.Logf(`
Error chain did not match
Expected: %v
     Got: %v`, target, got)
		t.Fail()
		return false
	}
	return true
}
