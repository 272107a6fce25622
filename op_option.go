package optionparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// StorageMode is the arity contract of an option.
type StorageMode int

const (
	StoreTrue       StorageMode = iota // presence only, no value consumed
	StoreValue                         // exactly one value, overwritten on each match
	StoreMultValues                    // greedy list until the next flag-like token
)

func (m StorageMode) String() string {
	switch m {
	case StoreTrue:
		return "store_true"
	case StoreValue:
		return "store_value"
	case StoreMultValues:
		return "store_mult_values"
	}
	return fmt.Sprintf("StorageMode(%d)", int(m))
}

type Option struct {
	first          string // identifiers as given, resolved on Register
	second         string
	shortFlag      string // e.g. "-f"
	longFlag       string // e.g. "--flag" or "-singledash"
	positionalName string
	dest           string
	destOverride   bool
	mode           StorageMode
	help           string
	metavar        string
	required       bool
	defaultValue   mo.Option[string]

	// state post-parse
	found bool
}

// NewOption starts an option definition. Nothing is validated until Register.
func NewOption(first string, second ...string) *Option {
	o := &Option{first: first, defaultValue: mo.None[string]()}
	if len(second) > 0 {
		o.second = second[0]
	}
	return o
}

func (o *Option) SetHelp(h string) *Option {
	o.help = h
	return o
}

func (o *Option) SetMode(m StorageMode) *Option {
	o.mode = m
	return o
}

// SetDefault stores v as text; numbers are formatted the way they would be
// typed on the command line.
func (o *Option) SetDefault(v any) *Option {
	var s string
	switch d := v.(type) {
	case string:
		s = d
	case float32:
		s = strconv.FormatFloat(float64(d), 'g', -1, 32)
	case float64:
		s = strconv.FormatFloat(d, 'g', -1, 64)
	default:
		s = fmt.Sprint(d)
	}
	o.defaultValue = mo.Some(s)
	return o
}

func (o *Option) SetRequired(b bool) *Option {
	o.required = b
	return o
}

func (o *Option) SetMetavar(m string) *Option {
	o.metavar = m
	return o
}

// SetDest overrides the derived destination key.
func (o *Option) SetDest(d string) *Option {
	o.dest = d
	o.destOverride = true
	return o
}

func (o *Option) Dest() string           { return o.dest }
func (o *Option) ShortFlag() string      { return o.shortFlag }
func (o *Option) LongFlag() string       { return o.longFlag }
func (o *Option) PositionalName() string { return o.positionalName }
func (o *Option) Mode() StorageMode      { return o.mode }
func (o *Option) Help() string           { return o.help }
func (o *Option) Required() bool         { return o.required }
func (o *Option) Found() bool            { return o.found }
func (o *Option) IsPositional() bool     { return o.positionalName != "" }

// Default returns the configured default and whether one was set.
func (o *Option) Default() (string, bool) {
	return o.defaultValue.Get()
}

// Metavar is the placeholder shown after the flag in help output.
func (o *Option) Metavar() string {
	if o.mode == StoreTrue {
		return ""
	}
	m := o.metavar
	if m == "" {
		switch {
		case o.positionalName != "":
			m = strings.ToUpper(o.positionalName)
		case o.longFlag != "":
			m = strings.ToUpper(stripDashes(o.longFlag))
		default:
			m = "ARG"
		}
	}
	if o.mode == StoreMultValues {
		return fmt.Sprintf("%s1 [%s2, %s3, ...]", m, m, m)
	}
	return m
}

// Register resolves the identifiers and appends the option to p.
func (o *Option) Register(p *Parser) error {
	dest, err := destination(o.first, o.second)
	if err != nil {
		return err
	}
	if !o.destOverride {
		o.dest = dest
	}
	if o.dest == "" {
		return NewConfigError("destination cannot be empty")
	}

	o.shortFlag, o.longFlag, o.positionalName = "", "", ""
	for _, id := range []string{o.first, o.second} {
		switch Classify(id) {
		case LongOpt:
			o.longFlag = id
		case ShortOpt:
			o.shortFlag = id
		case PositionalOpt:
			o.positionalName = id
		}
	}

	if p.lookupOption(o.dest) != nil {
		return NewConfigError(fmt.Sprintf("destination %q already defined", o.dest))
	}
	for _, spelling := range []string{o.shortFlag, o.longFlag} {
		if spelling != "" && p.spellingTaken(spelling) {
			return NewConfigError(fmt.Sprintf("flag %q already defined", spelling))
		}
	}

	p.options = append(p.options, o)
	if o.positionalName != "" {
		p.positional = append(p.positional, o)
	}
	p.logger.Debug("Option registered.", "dest", o.dest, "short", o.shortFlag, "long", o.longFlag,
		"positional", o.positionalName)
	return nil
}
