package config

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Key names one setting: a top-level field such as "year", or one party's
// entry in party_colors or short_names.
type Key struct {
	Field string
	Party string
}

func (k Key) String() string {
	if k.Party == "" {
		return k.Field
	}
	return k.Field + "." + k.Party
}

type field struct {
	index int
	kind  reflect.Kind
}

// fields indexes Config by yaml name.
var fields = sync.OnceValue(func() map[string]field {
	t := reflect.TypeFor[Config]()
	out := make(map[string]field, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			out[name] = field{index: i, kind: t.Field(i).Type.Kind()}
		}
	}
	return out
})

// ParseKey parses "city" or "party_colors.Ontario Liberal Party". Everything
// after the first dot is the party name, so names may contain dots.
func ParseKey(s string) (Key, error) {
	name, party, nested := strings.Cut(s, ".")
	if name == "" {
		return Key{}, errors.New("empty key")
	}
	f, ok := fields()[name]
	if !ok {
		return Key{}, fmt.Errorf("unknown key %q; valid keys: %s", name,
			strings.Join(slices.Sorted(maps.Keys(fields())), ", "))
	}
	if nested && f.kind != reflect.Map {
		return Key{}, fmt.Errorf("%s has no sub-keys", name)
	}
	if nested && party == "" {
		return Key{}, fmt.Errorf("%s: empty party name", name)
	}
	return Key{Field: name, Party: party}, nil
}

// Lookup returns the value stored under k. Unset values are errors.
func (c *Config) Lookup(k Key) (any, error) {
	f, ok := fields()[k.Field]
	if !ok {
		return nil, fmt.Errorf("unknown key %q", k.Field)
	}
	v := reflect.ValueOf(c).Elem().Field(f.index)
	if k.Party != "" {
		if f.kind != reflect.Map {
			return nil, fmt.Errorf("%s has no sub-keys", k.Field)
		}
		e := v.MapIndex(reflect.ValueOf(k.Party))
		if !e.IsValid() {
			return nil, fmt.Errorf("%s is not set", k)
		}
		return e.Interface(), nil
	}
	if v.IsZero() {
		return nil, fmt.Errorf("%s is not set", k)
	}
	return v.Interface(), nil
}

// Entries returns every set value keyed by its dotted key. Party maps give
// one entry per party.
func (c *Config) Entries() map[string]any {
	out := make(map[string]any)
	v := reflect.ValueOf(c).Elem()
	for name, f := range fields() {
		fv := v.Field(f.index)
		switch {
		case fv.IsZero():
		case f.kind == reflect.Map:
			iter := fv.MapRange()
			for iter.Next() {
				out[Key{Field: name, Party: iter.Key().String()}.String()] = iter.Value().Interface()
			}
		default:
			out[name] = fv.Interface()
		}
	}
	return out
}

// Set stores raw under k in a raw YAML document, converted to the field's
// type: parties takes a comma-separated list and year-like fields a whole
// number.
func Set(doc map[string]any, k Key, raw string) error {
	f, ok := fields()[k.Field]
	if !ok {
		return fmt.Errorf("unknown key %q", k.Field)
	}
	switch f.kind {
	case reflect.Map:
		if k.Party == "" {
			return fmt.Errorf("%s needs a party name, e.g. %s.Liberal", k.Field, k.Field)
		}
		m, ok := doc[k.Field].(map[string]any)
		if !ok {
			if doc[k.Field] != nil {
				return fmt.Errorf("%s in the file is not a map", k.Field)
			}
			m = make(map[string]any)
			doc[k.Field] = m
		}
		m[k.Party] = raw
	case reflect.Slice:
		doc[k.Field] = splitList(raw)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s: %q is not a whole number", k, raw)
		}
		doc[k.Field] = n
	default:
		doc[k.Field] = raw
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
