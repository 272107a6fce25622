package optionparser

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsedNumbers(t *testing.T) *Parser {
	t.Helper()
	p := newParser()
	mustAdd(t, p, "--int").SetMode(StoreValue)
	mustAdd(t, p, "--neg").SetMode(StoreValue)
	mustAdd(t, p, "--float").SetMode(StoreValue)
	mustAdd(t, p, "--word").SetMode(StoreValue)
	mustAdd(t, p, "--ints").SetMode(StoreMultValues)
	mustAdd(t, p, "--mixed").SetMode(StoreMultValues)
	mustAdd(t, p, "--unset").SetMode(StoreValue)
	mustAdd(t, p, "--flag")

	err := p.ParseOrError(argv(
		"--int", "72", "--neg=-3", "--float", "2.5", "--word", "abc",
		"--ints", "1", "2", "3", "--mixed", "4", "five",
	))
	require.NoError(t, err)
	return p
}

func TestNumericRetrieval(t *testing.T) {
	p := parsedNumbers(t)

	n, err := p.GetInt("int")
	assert.NoError(t, err)
	assert.Equal(t, 72, n)

	u, err := p.GetUint("int")
	assert.NoError(t, err)
	assert.Equal(t, uint(72), u)

	neg, err := p.GetInt("neg")
	assert.NoError(t, err)
	assert.Equal(t, -3, neg)

	f32, err := p.GetFloat32("float")
	assert.NoError(t, err)
	assert.Equal(t, float32(2.5), f32)

	f64, err := p.GetFloat64("float")
	assert.NoError(t, err)
	assert.Equal(t, 2.5, f64)

	ints, err := p.GetInts("ints")
	assert.NoError(t, err)
	if diff := cmp.Diff([]int{1, 2, 3}, ints); diff != "" {
		t.Errorf("ints mismatch (-want +got):\n%s", diff)
	}
}

func TestNumericRetrievalFailsOnMalformedValue(t *testing.T) {
	p := parsedNumbers(t)

	tests := []struct {
		name  string
		get   func() error
		typ   string
		value string
	}{
		{"int", func() error { _, err := p.GetInt("word"); return err }, "int", "abc"},
		{"uint of negative", func() error { _, err := p.GetUint("neg"); return err }, "uint", "-3"},
		{"float32", func() error { _, err := p.GetFloat32("word"); return err }, "float32", "abc"},
		{"float64", func() error { _, err := p.GetFloat64("word"); return err }, "float64", "abc"},
		{"ints", func() error { _, err := p.GetInts("mixed"); return err }, "int", "five"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.get()
			var lookupErr *LookupError
			require.True(t, errors.As(err, &lookupErr), "got %v", err)
			assert.Equal(t, tt.typ, lookupErr.Type)
			assert.Equal(t, tt.value, lookupErr.Value)
			assert.ErrorIs(t, err, strconv.ErrSyntax)
		})
	}
}

func TestLookupUnknownField(t *testing.T) {
	p := parsedNumbers(t)

	_, err := p.Value("nope")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "Tried to access value for field 'nope' which is not a valid field.", err.Error())

	_, err = p.GetBool("nope")
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = Get[[]int](p, "nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestLookupRegisteredButEmpty(t *testing.T) {
	p := parsedNumbers(t)

	b, err := p.GetBool("unset")
	assert.NoError(t, err)
	assert.False(t, b)

	_, err = p.GetString("unset")
	assert.ErrorIs(t, err, ErrNoValue)
	assert.NotErrorIs(t, err, ErrUnknownField)

	_, err = p.GetStrings("flag")
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestLookupBeforeParse(t *testing.T) {
	p := newParser()
	mustAdd(t, p, "--flag")

	b, err := p.GetBool("flag")
	assert.NoError(t, err)
	assert.False(t, b)
}

func TestStringReturnsFirstValue(t *testing.T) {
	p := parsedNumbers(t)
	assert.Equal(t, "1", mustString(t, p, "ints"))
}

func TestGetGeneric(t *testing.T) {
	p := parsedNumbers(t)

	n, err := Get[int](p, "int")
	assert.NoError(t, err)
	assert.Equal(t, 72, n)

	u, err := Get[uint](p, "int")
	assert.NoError(t, err)
	assert.Equal(t, uint(72), u)

	f, err := Get[float32](p, "float")
	assert.NoError(t, err)
	assert.Equal(t, float32(2.5), f)

	ss, err := Get[[]string](p, "mixed")
	assert.NoError(t, err)
	assert.Equal(t, []string{"4", "five"}, ss)

	ints, err := Get[[]int](p, "ints")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ints)

	_, err = Get[int](p, "word")
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestValueRawIsACopy(t *testing.T) {
	p := parsedNumbers(t)
	v, err := p.Value("ints")
	require.NoError(t, err)

	raw := v.Raw()
	raw[0] = "changed"
	assert.Equal(t, []string{"1", "2", "3"}, mustStrings(t, p, "ints"))
}
