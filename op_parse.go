package optionparser

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/shlex"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EatArguments parses argv, whose first element is the program name. Help,
// dump output and diagnostics are printed either way; the FailurePolicy
// decides whether it then exits or returns the error. Under ExitOnFailure it
// only returns if the exit function does.
func (p *Parser) EatArguments(argv []string, opts ...ParseOpt) error {
	err := p.parse(argv, opts...)
	p.handle(err)
	return publicError(err)
}

func (p *Parser) handle(err error) {
	if err == nil {
		return
	}
	code := p.report(err)
	if p.failurePolicy == ExitOnFailure {
		osExit(code)
	}
}

// ParseLine splits a shell-quoted command line and parses the words, the
// first of which is the program name.
func (p *Parser) ParseLine(line string, opts ...ParseOpt) error {
	argv, err := shlex.Split(line)
	if err != nil {
		err = newSyntaxError(line, "cannot split command line: %v", err)
		p.handle(err)
		return err
	}
	return p.EatArguments(argv, opts...)
}

// ParseOrExit parses argv and exits on help (status 0) or failure (status 1).
func (p *Parser) ParseOrExit(argv []string, opts ...ParseOpt) {
	p.exitOn(p.parse(argv, opts...))
}

// ParseOrError parses argv and returns any failure without printing. Help
// and dump requests come back as ErrHelp and ErrDump.
func (p *Parser) ParseOrError(argv []string, opts ...ParseOpt) error {
	return publicError(p.parse(argv, opts...))
}

func publicError(err error) error {
	var helpErr *helpInvokedError
	var dumpErr *dumpInvokedError
	switch {
	case errors.As(err, &helpErr):
		return ErrHelp
	case errors.As(err, &dumpErr):
		return ErrDump
	}
	return err
}

func (p *Parser) exitOn(err error) {
	if err == nil {
		return
	}
	osExit(p.report(err))
}

// report prints the outcome of a failed or short-circuited parse and returns
// the matching exit status.
func (p *Parser) report(err error) int {
	var helpErr *helpInvokedError
	var dumpErr *dumpInvokedError
	var cfgErr *ConfigError
	switch {
	case errors.As(err, &helpErr):
		fmt.Fprint(stdoutWriter, helpErr.output)
		return 0
	case errors.As(err, &dumpErr):
		fmt.Fprint(stdoutWriter, dumpErr.output)
		return 0
	case errors.As(err, &cfgErr):
		// Programming error - show only the message
		fmt.Fprintln(stderrWriter, RedS("%s: %s", p.displayName(), err.Error()))
		return 1
	default:
		fmt.Fprintln(stderrWriter, RedS("%s: %s", p.displayName(), err.Error()))
		fmt.Fprintln(stderrWriter)
		fmt.Fprintln(stderrWriter, p.GenerateSynopsis())
		if p.helpOption != nil {
			fmt.Fprintf(stderrWriter, "Try '%s %s' for more information.\n", p.displayName(), p.helpSpelling())
		}
		return 1
	}
}

func (p *Parser) parse(argv []string, opts ...ParseOpt) error {
	initializeColorFromEnv()

	cfg := newParseCfg(opts)

	var args []string
	if len(argv) > 0 {
		if p.progName == "" {
			p.progName = progName(argv[0])
		}
		args = argv[1:]
	}

	p.ensureHelpOption()

	if err := p.validateBeforeParsing(); err != nil {
		return err
	}
	p.reset()

	if cfg.dump {
		return &dumpInvokedError{output: p.GenerateDump(argv, opts...)}
	}

	p.logger.Debug("Parse started.", "prog", p.progName, "args", args)
	err := p.eat(args, cfg)

	// help wins over both token errors and missing required options
	if p.helpOption != nil && (p.helpOption.found || (err != nil && p.hasHelpToken(args))) {
		p.logger.Debug("Help requested.")
		return &helpInvokedError{output: p.GenerateUsage()}
	}
	if err != nil {
		return err
	}

	if err := p.checkForMissingArgs(); err != nil {
		return err
	}
	p.logger.Debug("Parse finished.", "values", p.values.Len())
	return nil
}

func (p *Parser) validateBeforeParsing() error {
	seen := make(map[string]bool, len(p.options))
	for _, o := range p.options {
		if o.dest == "" {
			return NewConfigError("destination cannot be empty")
		}
		if seen[o.dest] {
			return NewConfigError(fmt.Sprintf("destination %q already defined", o.dest))
		}
		seen[o.dest] = true
	}

	var variadic *Option
	for _, o := range p.positional {
		if variadic != nil {
			return NewConfigError(fmt.Sprintf(
				"positional %q cannot follow multi-value positional %q (it would never receive a value)",
				o.positionalName, variadic.positionalName))
		}
		if o.mode == StoreMultValues {
			variadic = o
		}
	}
	return nil
}

// reset clears per-parse state and rebuilds the lookup tables, since modes and
// destinations may have changed since registration.
func (p *Parser) reset() {
	p.values = orderedmap.New[string, []string]()
	p.index = make(map[string]int, len(p.options))
	p.withVal = make(map[byte]*Option)
	p.withoutVal = make(map[byte]*Option)
	p.unknownArgs = nil
	p.posCount = 0
	p.afterDashes = false

	for i, o := range p.options {
		o.found = false
		p.index[o.dest] = i
		if o.shortFlag == "" {
			continue
		}
		if o.mode == StoreTrue {
			p.withoutVal[o.shortFlag[1]] = o
		} else {
			p.withVal[o.shortFlag[1]] = o
		}
	}
}

func (p *Parser) eat(args []string, cfg *parseCfg) error {
	t := newTokens(args)
	for ; !t.done(); t.advance() {
		tok := t.current()
		p.logger.Debug("Parsing token.", "token", tok, "index", t.index)

		err := p.eatToken(t)
		if err == nil {
			continue
		}
		var se *SyntaxError
		if cfg.ignoreUnknown && errors.As(err, &se) && se.unknown {
			p.logger.Debug("Ignoring unknown token.", "token", tok)
			p.unknownArgs = append(p.unknownArgs, tok)
			continue
		}
		return err
	}
	return nil
}

func (p *Parser) eatToken(t *tokens) error {
	tok := t.current()

	if p.afterDashes {
		return p.assignPositional(tok)
	}
	if tok == "--" {
		p.afterDashes = true
		return nil
	}
	if tok == "-" {
		return newSyntaxError(tok, "A flag needs a letter after '-'")
	}
	if !isFlagLike(tok) {
		return p.assignPositional(tok)
	}

	for _, o := range p.options {
		for _, flag := range []string{o.longFlag, o.shortFlag} {
			m, ok := matchFlag(tok, flag)
			if !ok {
				continue
			}
			p.logger.Debug("Matched flag.", "token", tok, "flag", flag, "dest", o.dest)
			return p.getValueArg(t, o, flag, m)
		}
	}

	digitShorts := p.hasDigitShorts()
	if !strings.HasPrefix(tok, "--") && (startsWithLetter(tok[1:]) || (digitShorts && isDigit(tok[1]))) {
		return p.eatCluster(t, tok)
	}
	if !digitShorts && looksNegativeNumber(tok) {
		return p.assignPositional(tok)
	}
	return p.unrecognized(tok)
}

// joined is what follows a flag inside the same token.
type joined struct {
	value string
	sep   byte // 0 when nothing is joined, else '=' or ' '
}

// matchFlag reports whether tok spells flag, alone or with a joined value.
func matchFlag(tok, flag string) (joined, bool) {
	if flag == "" || !strings.HasPrefix(tok, flag) {
		return joined{}, false
	}
	if len(tok) == len(flag) {
		return joined{}, true
	}
	switch c := tok[len(flag)]; c {
	case '=', ' ':
		return joined{value: tok[len(flag)+1:], sep: c}, true
	}
	return joined{}, false
}

// getValueArg extracts the value(s) for a matched flag according to its mode.
func (p *Parser) getValueArg(t *tokens, o *Option, flag string, j joined) error {
	tok := t.current()

	if o.mode == StoreTrue {
		if j.sep != 0 {
			return newSyntaxError(tok, "Error, value passed to flag '%s', which takes no values.", flag)
		}
		o.found = true
		return nil
	}

	var vals []string
	switch j.sep {
	case '=':
		if j.value == "" {
			return newSyntaxError(tok, "Error, argument needed after '='.")
		}
		vals = []string{j.value}
	case ' ':
		rest := strings.TrimSpace(j.value)
		if rest == "" {
			return newSyntaxError(tok, "Error, argument needed after '%s'.", flag)
		}
		split, err := shlex.Split(rest)
		if err != nil {
			return newSyntaxError(tok, "Error, cannot split values for '%s': %v", flag, err)
		}
		if len(split) == 0 {
			return newSyntaxError(tok, "Error, argument needed after '%s'.", flag)
		}
		vals = split
	default:
		next, ok := t.nextIf(func(s string) bool { return !isFlagLike(s) })
		if !ok {
			d, hasDefault := o.Default()
			if !hasDefault {
				return &MissingArgsError{Flag: flag}
			}
			// values from an earlier match are kept
			if existing, _ := p.values.Get(o.dest); len(existing) == 0 {
				p.logger.Debug("Flag without value, using default.", "flag", flag, "default", d)
				p.store(o, []string{d})
			}
			o.found = true
			return nil
		}
		vals = []string{next}
	}

	if o.mode == StoreMultValues {
		vals = append(vals, t.takeValues()...)
	}
	p.store(o, vals)
	o.found = true
	return nil
}

// store overwrites single-value destinations and appends to multi-value ones.
func (p *Parser) store(o *Option, vals []string) {
	if o.mode == StoreMultValues {
		existing, _ := p.values.Get(o.dest)
		p.values.Set(o.dest, append(slices.Clone(existing), vals...))
	} else {
		p.values.Set(o.dest, []string{vals[len(vals)-1]})
	}
	p.logger.Debug("Stored values.", "dest", o.dest, "values", vals)
}

// eatCluster resolves a combined short-flag token such as "-abc" or "-vfout.txt".
// The whole cluster is checked before any flag is set.
func (p *Parser) eatCluster(t *tokens, tok string) error {
	body := tok[1:]

	for i := 0; i < len(body); i++ {
		c := body[i]
		if _, ok := p.withVal[c]; ok {
			break
		}
		if c == '=' {
			return newSyntaxError(tok, "Error, value passed to flag '-%c', which takes no values.", body[i-1])
		}
		if _, ok := p.withoutVal[c]; !ok {
			r, _ := utf8.DecodeRuneInString(body[i:])
			return &SyntaxError{Token: tok, Reason: fmt.Sprintf("Invalid flag '-%c'", r), unknown: true}
		}
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		if o, ok := p.withVal[c]; ok {
			flag := "-" + string(c)
			rest := body[i+1:]
			p.logger.Debug("Cluster flag takes value.", "token", tok, "flag", flag, "dest", o.dest)
			switch {
			case strings.HasPrefix(rest, "="):
				return p.getValueArg(t, o, flag, joined{value: rest[1:], sep: '='})
			case rest != "":
				return p.getValueArg(t, o, flag, joined{value: rest, sep: '='})
			}
			return p.getValueArg(t, o, flag, joined{})
		}
		p.withoutVal[c].found = true
	}
	return nil
}

// assignPositional gives tok to the next free positional slot. A multi-value
// slot keeps every later bare token.
func (p *Parser) assignPositional(tok string) error {
	if p.posCount >= len(p.positional) {
		return &SyntaxError{Token: tok, Reason: fmt.Sprintf("Unrecognized argument '%s'", tok), unknown: true}
	}
	o := p.positional[p.posCount]
	o.found = true
	if o.mode == StoreMultValues {
		p.store(o, []string{tok})
		return nil
	}
	p.values.Set(o.dest, []string{tok})
	p.posCount++
	p.logger.Debug("Assigned positional.", "dest", o.dest, "value", tok)
	return nil
}

func (p *Parser) unrecognized(tok string) error {
	for _, o := range p.options {
		if o.mode != StoreTrue && o.longFlag != "" && len(tok) > len(o.longFlag) && strings.HasPrefix(tok, o.longFlag) {
			return newSyntaxError(tok, "Error, long options (%s) require a '=' or space before a value.", o.longFlag)
		}
	}
	return &SyntaxError{Token: tok, Reason: fmt.Sprintf("Unrecognized flag/option '%s'", tok), unknown: true}
}

// checkForMissingArgs injects defaults for unmatched options and fails once
// for all required options that never matched.
func (p *Parser) checkForMissingArgs() error {
	var missing []string
	for _, o := range p.options {
		if o.found {
			continue
		}
		if o.required {
			missing = append(missing, o.dest)
			continue
		}
		if d, ok := o.Default(); ok {
			p.values.Set(o.dest, []string{d})
			o.found = true
			p.logger.Debug("Applied default.", "dest", o.dest, "default", d)
		}
	}
	if len(missing) > 0 {
		return &MissingArgsError{Missing: missing}
	}
	return nil
}

func (p *Parser) hasDigitShorts() bool {
	for c := range p.withVal {
		if isDigit(c) {
			return true
		}
	}
	for c := range p.withoutVal {
		if isDigit(c) {
			return true
		}
	}
	return false
}

func (p *Parser) hasHelpToken(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if p.helpOption.longFlag != "" && arg == p.helpOption.longFlag {
			return true
		}
		if p.helpOption.shortFlag != "" && arg == p.helpOption.shortFlag {
			return true
		}
	}
	return false
}

func (p *Parser) helpSpelling() string {
	if p.helpOption.longFlag != "" {
		return p.helpOption.longFlag
	}
	return p.helpOption.shortFlag
}
