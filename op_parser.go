package optionparser

import (
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FailurePolicy decides what EatArguments does with a parse failure.
type FailurePolicy int

const (
	// ExitOnFailure prints a diagnostic to stderr and exits with status 1.
	ExitOnFailure FailurePolicy = iota
	// ReturnOnFailure prints the same diagnostic and returns the error instead.
	ReturnOnFailure
)

const (
	helpLong  = "--help"
	helpShort = "-h"
)

type Parser struct {
	description string
	options     []*Option // registration order, which is also match order
	positional  []*Option // positional slots in declaration order
	progName    string

	// options
	helpEnabled   bool
	failurePolicy FailurePolicy
	wrapWidth     int // 0 means detect from the terminal
	logger        *slog.Logger

	// state post-parse
	helpOption  *Option
	values      *orderedmap.OrderedMap[string, []string] // destination -> values, in extraction order
	index       map[string]int                           // destination -> position in options
	withVal     map[byte]*Option                         // short flag letter -> value-taking option
	withoutVal  map[byte]*Option                         // short flag letter -> boolean option
	unknownArgs []string
	posCount    int // positional slots consumed so far
	afterDashes bool
}

func NewParser(description string) *Parser {
	return &Parser{
		description: description,
		helpEnabled: true,
		logger:      slog.New(slog.DiscardHandler),
		values:      orderedmap.New[string, []string](),
		index:       make(map[string]int),
	}
}

func (p *Parser) SetDescription(desc string) *Parser {
	p.description = desc
	return p
}

// SetHelpEnabled controls the automatic --help/-h option.
func (p *Parser) SetHelpEnabled(enable bool) *Parser {
	p.helpEnabled = enable
	return p
}

func (p *Parser) SetFailurePolicy(policy FailurePolicy) *Parser {
	p.failurePolicy = policy
	return p
}

// SetLogger attaches a logger that receives a Debug record per parse decision.
func (p *Parser) SetLogger(l *slog.Logger) *Parser {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	p.logger = l
	return p
}

// SetWrapWidth fixes the help text width instead of asking the terminal.
func (p *Parser) SetWrapWidth(width int) *Parser {
	p.wrapWidth = width
	return p
}

// SetProgName overrides the program name that would be taken from argv[0].
func (p *Parser) SetProgName(name string) *Parser {
	p.progName = name
	return p
}

func (p *Parser) ProgName() string {
	return p.progName
}

// AddOption registers a boolean option and returns it for further chaining.
//
//	opt, err := p.AddOption("--output", "-o")
//	opt.SetMode(StoreValue).SetDefault("out.txt")
func (p *Parser) AddOption(first string, second ...string) (*Option, error) {
	o := NewOption(first, second...)
	if err := o.Register(p); err != nil {
		return nil, err
	}
	return o, nil
}

// Options returns the registered options in registration order.
func (p *Parser) Options() []*Option {
	out := make([]*Option, len(p.options))
	copy(out, p.options)
	return out
}

// UnknownArgs returns tokens skipped because of WithIgnoreUnknown.
func (p *Parser) UnknownArgs() []string {
	return p.unknownArgs
}

func (p *Parser) lookupOption(dest string) *Option {
	for _, o := range p.options {
		if o.dest == dest {
			return o
		}
	}
	return nil
}

func (p *Parser) spellingTaken(spelling string) bool {
	for _, o := range p.options {
		if o.shortFlag == spelling || o.longFlag == spelling {
			return true
		}
	}
	return false
}

// ensureHelpOption registers --help/-h ahead of every other option, using
// whichever spellings are still free.
func (p *Parser) ensureHelpOption() {
	if !p.helpEnabled || p.helpOption != nil {
		return
	}
	var ids []string
	for _, s := range []string{helpLong, helpShort} {
		if !p.spellingTaken(s) {
			ids = append(ids, s)
		}
	}
	if len(ids) == 0 {
		return
	}
	h := NewOption(ids[0], ids[1:]...).SetHelp("Display this help message and exit.")
	if p.lookupOption("help") != nil {
		// the user owns the "help" destination; keep help reachable anyway
		h.SetDest("__help")
	}
	if err := h.Register(p); err != nil {
		p.logger.Debug("Help option not registered.", "error", err)
		return
	}
	// move to the front so help wins every tie-break
	copy(p.options[1:], p.options[:len(p.options)-1])
	p.options[0] = h
	p.helpOption = h
}
