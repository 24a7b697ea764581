// Package prefs is a JSON preference store for gridterm terminal settings.
//
// Keys are gjson paths, so "TerminalConfiguration-1.Rows" is stored as a
// nested object:
//
//	{"TerminalConfiguration-1": {"Rows": 24}}
package prefs

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrInvalid reports a preferences file that is not valid JSON.
var ErrInvalid = errors.New("prefs: invalid JSON")

// Store holds a preferences document in memory. It implements
// gridterm.Preferences. Not safe for concurrent use.
type Store struct {
	doc   string
	path  string
	dirty bool
}

// New returns an empty store with no backing file.
func New() *Store {
	return &Store{doc: "{}"}
}

// Parse builds a store from a JSON document.
func Parse(data []byte) (*Store, error) {
	if len(data) == 0 {
		return New(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalid
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalid)
	}
	return &Store{doc: string(data)}, nil
}

// Load reads a store from path. A missing file yields an empty store that
// Save will create.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s := New()
			s.path = path
			return s, nil
		}
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("prefs: %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Path returns the file the store saves to.
func (s *Store) Path() string {
	return s.path
}

// Dirty reports whether the store changed since it was loaded or saved.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Bytes returns the document, indented.
func (s *Store) Bytes() []byte {
	return pretty.Pretty([]byte(s.doc))
}

// Save writes the store to its path.
func (s *Store) Save() error {
	if s.path == "" {
		return errors.New("prefs: store has no path")
	}
	return s.SaveTo(s.path)
}

// SaveTo writes the store to path and makes it the store's path.
func (s *Store) SaveTo(path string) error {
	if err := os.WriteFile(path, s.Bytes(), 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", path, err)
	}
	s.path = path
	s.dirty = false
	return nil
}

func (s *Store) get(key string) gjson.Result {
	return gjson.Get(s.doc, key)
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	return s.get(key).Exists()
}

// Int returns a numeric value truncated to int.
func (s *Store) Int(key string) (int, bool) {
	r := s.get(key)
	if r.Type != gjson.Number {
		return 0, false
	}
	return int(r.Int()), true
}

// Float returns a numeric value.
func (s *Store) Float(key string) (float64, bool) {
	r := s.get(key)
	if r.Type != gjson.Number {
		return 0, false
	}
	return r.Float(), true
}

// String returns a string value.
func (s *Store) String(key string) (string, bool) {
	r := s.get(key)
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

// Bool returns a boolean value.
func (s *Store) Bool(key string) (bool, bool) {
	r := s.get(key)
	if !r.IsBool() {
		return false, false
	}
	return r.Bool(), true
}

func (s *Store) set(key string, v any) error {
	doc, err := sjson.Set(s.doc, key, v)
	if err != nil {
		return fmt.Errorf("prefs: set %s: %w", key, err)
	}
	s.doc = doc
	s.dirty = true
	return nil
}

// SetInt stores an integer.
func (s *Store) SetInt(key string, v int) error { return s.set(key, v) }

// SetFloat stores a number.
func (s *Store) SetFloat(key string, v float64) error { return s.set(key, v) }

// SetString stores a string.
func (s *Store) SetString(key string, v string) error { return s.set(key, v) }

// SetBool stores a boolean.
func (s *Store) SetBool(key string, v bool) error { return s.set(key, v) }

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	doc, err := sjson.Delete(s.doc, key)
	if err != nil {
		return fmt.Errorf("prefs: delete %s: %w", key, err)
	}
	s.doc = doc
	s.dirty = true
	return nil
}
