package confparse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind is the value type a Field accepts.
type Kind int

const (
	KindString Kind = iota
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field binds a configuration key to a field of T through an accessor.
type Field[T any] struct {
	Key  string
	Kind Kind
	str  func(*T) *string
	num  func(*T) *int64
}

// StringField declares a string valued key stored at the returned pointer.
func StringField[T any](key string, at func(cfg *T) *string) Field[T] {
	return Field[T]{Key: key, Kind: KindString, str: at}
}

// IntField declares an integer valued key stored at the returned pointer.
func IntField[T any](key string, at func(cfg *T) *int64) Field[T] {
	return Field[T]{Key: key, Kind: KindInteger, num: at}
}

// Schema is an ordered set of fields.
type Schema[T any] []Field[T]

// Lookup returns the field declared for key.
func (s Schema[T]) Lookup(key string) (Field[T], bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Set assigns the raw value to the field declared for key.
func (s Schema[T]) Set(cfg *T, key, raw string) error {
	f, ok := s.Lookup(key)
	if !ok {
		return &UnknownKeyError{Key: key}
	}
	switch f.Kind {
	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("key %s: invalid integer %q: %w", key, raw, err)
		}
		*f.num(cfg) = n
	default:
		*f.str(cfg) = raw
	}
	return nil
}

// Get formats the current value of key.
func (s Schema[T]) Get(cfg *T, key string) (string, bool) {
	f, ok := s.Lookup(key)
	if !ok {
		return "", false
	}
	if f.Kind == KindInteger {
		return strconv.FormatInt(*f.num(cfg), 10), true
	}
	return *f.str(cfg), true
}

// Each calls fn for every declared key in order with its current value.
func (s Schema[T]) Each(cfg *T, fn func(key, value string)) {
	for _, f := range s {
		v, _ := s.Get(cfg, f.Key)
		fn(f.Key, v)
	}
}

// UnknownKeyError is reported for keys the schema does not declare.
type UnknownKeyError struct{ Key string }

func (e *UnknownKeyError) Error() string { return "unknown config-key '" + e.Key + "'" }

// Source yields key/value pairs until io.EOF. *Parser satisfies it.
type Source interface {
	Next() (key, value string, err error)
}

// Apply reads src to exhaustion and assigns every pair through the schema.
// Unknown keys, malformed lines and bad integers are passed to warn and
// skipped; only read errors abort.
func (s Schema[T]) Apply(cfg *T, src Source, warn func(error)) error {
	if warn == nil {
		warn = func(error) {}
	}
	for {
		key, value, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var syn *SyntaxError
		if errors.As(err, &syn) {
			warn(err)
			continue
		}
		if err != nil {
			return err
		}
		if err := s.Set(cfg, key, value); err != nil {
			warn(err)
		}
	}
}
