package hashset

import (
	"reflect"
	"strconv"
	"unicode/utf16"
)

// Element is the capability a value needs to live in a Set: a deterministic hash
// and an equality predicate consistent with it (equal values hash equally).
type Element[T any] interface {
	Hash() int
	Equal(other T) bool
}

// Int is an integer element whose hash is its own value.
type Int int

func (i Int) Hash() int { return int(i) }
func (i Int) Equal(other Int) bool { return i == other }
func (i Int) String() string { return strconv.Itoa(int(i)) }

// String is a string element hashed with the base-31 polynomial over its UTF-16
// code units, wrapped to 32 bits.
type String string

func (s String) Hash() int {
	var h int32
	for _, u := range utf16.Encode([]rune(string(s))) {
		h = 31*h + int32(u)
	}
	return int(h)
}

func (s String) Equal(other String) bool { return s == other }
func (s String) String() string { return string(s) }

// isNil reports whether v holds no value to hash: a nil interface or a nil
// pointer, map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
