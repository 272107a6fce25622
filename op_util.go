package optionparser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OptionType is the syntactic class of an identifier or a raw token.
type OptionType int

const (
	LongOpt OptionType = iota
	ShortOpt
	PositionalOpt
	EmptyOpt
)

func (t OptionType) String() string {
	switch t {
	case LongOpt:
		return "long"
	case ShortOpt:
		return "short"
	case PositionalOpt:
		return "positional"
	case EmptyOpt:
		return "empty"
	}
	return fmt.Sprintf("OptionType(%d)", int(t))
}

const shortSuffix = "_option"

// Classify reports the class of a token from its dashes and length alone.
// A single dash followed by more than one character counts as long, so
// "-singledash" can be registered as a long spelling.
func Classify(token string) OptionType {
	if token == "" {
		return EmptyOpt
	}
	if token[0] == '-' {
		if len(token) == 2 && token[1] != '-' {
			return ShortOpt
		}
		return LongOpt
	}
	return PositionalOpt
}

// stripDashes removes a leading "--" or "-".
func stripDashes(token string) string {
	if strings.HasPrefix(token, "--") {
		return token[2:]
	}
	return strings.TrimPrefix(token, "-")
}

// destination derives the destination key for a pair of identifiers.
func destination(first, second string) (string, error) {
	firstType, secondType := Classify(first), Classify(second)

	switch {
	case firstType == EmptyOpt:
		if second != "" {
			return "", NewConfigError(fmt.Sprintf("first identifier is empty but second is %q", second))
		}
		return "", NewConfigError("option needs at least one identifier")
	case firstType == PositionalOpt && secondType == PositionalOpt:
		return "", NewConfigError(fmt.Sprintf("option cannot have two positional names (%q, %q)", first, second))
	case secondType == PositionalOpt:
		return "", NewConfigError(fmt.Sprintf("positional name %q cannot be combined with %q", second, first))
	case firstType == PositionalOpt && secondType != EmptyOpt:
		return "", NewConfigError(fmt.Sprintf("positional name %q cannot be combined with %q", first, second))
	case firstType == secondType:
		return "", NewConfigError(fmt.Sprintf("option cannot have two %s flags (%q, %q)", firstType, first, second))
	}

	for _, id := range []string{first, second} {
		if id == "-" || id == "--" {
			return "", NewConfigError(fmt.Sprintf("%q is not a valid flag", id))
		}
		if strings.ContainsAny(id, "= ") {
			return "", NewConfigError(fmt.Sprintf("identifier %q cannot contain '=' or spaces", id))
		}
	}

	switch {
	case firstType == LongOpt:
		return stripDashes(first), nil
	case secondType == LongOpt:
		return stripDashes(second), nil
	case firstType == ShortOpt:
		return stripDashes(first) + shortSuffix, nil
	case secondType == ShortOpt:
		return stripDashes(second) + shortSuffix, nil
	}
	return first, nil
}

// progName strips any directory prefix from argv[0].
func progName(argv0 string) string {
	if i := strings.LastIndexAny(argv0, `/\`); i >= 0 {
		return argv0[i+1:]
	}
	return argv0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// startsWithLetter reports whether s begins with a letter in any script.
func startsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

// looksNegativeNumber reports tokens like "-5", "-1.5" or "-.5".
func looksNegativeNumber(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}
	return isDigit(token[1]) || (token[1] == '.' && len(token) > 2 && isDigit(token[2]))
}

// isFlagLike reports whether a token bounds greedy value consumption.
func isFlagLike(token string) bool {
	return strings.HasPrefix(token, "-")
}
