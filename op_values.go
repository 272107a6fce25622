package optionparser

import (
	"slices"
	"strconv"
)

// Value is the resolved state of one destination: whether it was found and
// the raw strings stored for it. Conversions happen on request, so a
// malformed number only fails when it is read as a number.
type Value struct {
	key   string
	found bool
	raw   []string
}

// Found reports whether the option matched or received its default.
func (v Value) Found() bool {
	return v.found
}

// Bool is the untyped reading of a value: presence.
func (v Value) Bool() bool {
	return v.found
}

func (v Value) Raw() []string {
	return slices.Clone(v.raw)
}

func (v Value) String() (string, error) {
	if len(v.raw) == 0 {
		return "", &LookupError{Key: v.key, Type: "string", Err: ErrNoValue}
	}
	return v.raw[0], nil
}

func (v Value) Int() (int, error) {
	s, err := v.String()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &LookupError{Key: v.key, Value: s, Type: "int", Err: err}
	}
	return n, nil
}

func (v Value) Uint() (uint, error) {
	s, err := v.String()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, &LookupError{Key: v.key, Value: s, Type: "uint", Err: err}
	}
	return uint(n), nil
}

func (v Value) Float32() (float32, error) {
	s, err := v.String()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, &LookupError{Key: v.key, Value: s, Type: "float32", Err: err}
	}
	return float32(f), nil
}

func (v Value) Float64() (float64, error) {
	s, err := v.String()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &LookupError{Key: v.key, Value: s, Type: "float64", Err: err}
	}
	return f, nil
}

func (v Value) Strings() ([]string, error) {
	if len(v.raw) == 0 {
		return nil, &LookupError{Key: v.key, Type: "[]string", Err: ErrNoValue}
	}
	return slices.Clone(v.raw), nil
}

func (v Value) Ints() ([]int, error) {
	if len(v.raw) == 0 {
		return nil, &LookupError{Key: v.key, Type: "[]int", Err: ErrNoValue}
	}
	out := make([]int, 0, len(v.raw))
	for _, s := range v.raw {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &LookupError{Key: v.key, Value: s, Type: "int", Err: err}
		}
		out = append(out, n)
	}
	return out, nil
}

// Value returns the resolved state of key. Unknown keys fail with a
// LookupError wrapping ErrUnknownField.
func (p *Parser) Value(key string) (Value, error) {
	o := p.option(key)
	if o == nil {
		return Value{}, &LookupError{Key: key, Err: ErrUnknownField}
	}
	raw, _ := p.values.Get(key)
	return Value{key: key, found: o.found, raw: raw}, nil
}

func (p *Parser) option(key string) *Option {
	if i, ok := p.index[key]; ok && i < len(p.options) && p.options[i].dest == key {
		return p.options[i]
	}
	return p.lookupOption(key)
}

func (p *Parser) GetBool(key string) (bool, error) {
	v, err := p.Value(key)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func (p *Parser) GetString(key string) (string, error) {
	v, err := p.Value(key)
	if err != nil {
		return "", err
	}
	return v.String()
}

func (p *Parser) GetInt(key string) (int, error) {
	v, err := p.Value(key)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

func (p *Parser) GetUint(key string) (uint, error) {
	v, err := p.Value(key)
	if err != nil {
		return 0, err
	}
	return v.Uint()
}

func (p *Parser) GetFloat32(key string) (float32, error) {
	v, err := p.Value(key)
	if err != nil {
		return 0, err
	}
	return v.Float32()
}

func (p *Parser) GetFloat64(key string) (float64, error) {
	v, err := p.Value(key)
	if err != nil {
		return 0, err
	}
	return v.Float64()
}

func (p *Parser) GetStrings(key string) ([]string, error) {
	v, err := p.Value(key)
	if err != nil {
		return nil, err
	}
	return v.Strings()
}

func (p *Parser) GetInts(key string) ([]int, error) {
	v, err := p.Value(key)
	if err != nil {
		return nil, err
	}
	return v.Ints()
}

// Gettable lists the types Get can produce.
type Gettable interface {
	bool | string | int | uint | float32 | float64 | []string | []int
}

// Get reads key as T.
//
//	n, err := optionparser.Get[int](p, "store_num")
func Get[T Gettable](p *Parser, key string) (T, error) {
	var zero T
	v, err := p.Value(key)
	if err != nil {
		return zero, err
	}

	var out any
	switch any(zero).(type) {
	case bool:
		out = v.Bool()
	case string:
		out, err = v.String()
	case int:
		out, err = v.Int()
	case uint:
		out, err = v.Uint()
	case float32:
		out, err = v.Float32()
	case float64:
		out, err = v.Float64()
	case []string:
		out, err = v.Strings()
	case []int:
		out, err = v.Ints()
	}
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
