package common

import (
	"fmt"
	"strings"
)

// Optional holds a value that may be absent. Value is the zero value of T
// whenever IsPresent is false.
type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	if !isPresent {
		return None[T]()
	}
	return Some(value)
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, IsPresent: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (p Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

// Email is always lower-cased and trimmed, so equal addresses compare equal.
type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}

// LocalPart returns the part of the email before the last "@".
func (e Email) LocalPart() string {
	s := string(e)
	ix := strings.LastIndex(s, "@")
	if ix < 0 {
		return s
	}
	return s[:ix]
}
