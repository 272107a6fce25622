package optionparser

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

var (
	greenBold  = color.New(color.FgGreen, color.Bold)
	cyan       = color.New(color.FgCyan)
	bold       = color.New(color.Bold)
	red        = color.New(color.FgRed)
	GreenBoldS = greenBold.SprintfFunc()
	CyanS      = cyan.SprintfFunc()
	BoldS      = bold.SprintfFunc()
	RedS       = red.SprintfFunc()
)

const (
	helpColumn     = 25
	helpIndent     = "    "
	defaultWidth   = 80
	minHelpColumns = 20
	colorEnvVar    = "OPTPARSE_COLOR"
)

func initializeColorFromEnv() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(colorEnvVar))) {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	default:
		// "", "auto" and anything unrecognized: fatih/color decides from the tty
	}
}

// GenerateUsage renders the full help text: synopsis, description and one
// row per option.
func (p *Parser) GenerateUsage() string {
	p.ensureHelpOption()

	var sb strings.Builder
	sb.WriteString(p.GenerateSynopsis())
	sb.WriteString("\n")

	if p.description != "" {
		sb.WriteString("\n" + p.description + "\n")
	}

	if len(p.options) > 0 {
		sb.WriteString("\n")
		sb.WriteString(p.formatOptions())
	}
	return sb.String()
}

// PrintHelp writes GenerateUsage to stdout.
func (p *Parser) PrintHelp() {
	fmt.Fprint(stdoutWriter, p.GenerateUsage())
}

// GenerateSynopsis renders the one-line "usage:" summary. Only required
// options and positionals are spelled out.
func (p *Parser) GenerateSynopsis() string {
	parts := []string{GreenBoldS("usage:"), BoldS("%s", p.displayName())}

	if p.helpOption != nil {
		s := p.helpOption.shortFlag
		if s == "" {
			s = p.helpOption.longFlag
		}
		parts = append(parts, "["+s+"]")
	}

	for _, o := range p.options {
		if o == p.helpOption || o.IsPositional() || !o.required {
			continue
		}
		s := o.shortFlag
		if s == "" {
			s = o.longFlag
		}
		if m := o.Metavar(); m != "" {
			s += " " + CyanS("%s", m)
		}
		parts = append(parts, s)
	}

	for _, o := range p.positional {
		name := o.positionalName
		if o.mode == StoreMultValues {
			name += "..."
		}
		if o.required {
			parts = append(parts, CyanS("<%s>", name))
		} else {
			parts = append(parts, CyanS("[%s]", name))
		}
	}

	parts = append(parts, "[options]")
	return strings.Join(parts, " ")
}

func (p *Parser) displayName() string {
	if p.progName != "" {
		return p.progName
	}
	if len(os.Args) > 0 {
		return progName(os.Args[0])
	}
	return ""
}

func (p *Parser) formatOptions() string {
	var sb strings.Builder
	width := p.effectiveWrapWidth() - helpColumn
	if width < minHelpColumns {
		width = minHelpColumns
	}
	pad := strings.Repeat(" ", helpColumn)

	for _, o := range p.options {
		plain, styled := flagColumn(o)
		help := helpText(o)

		sb.WriteString(styled)
		if help == "" {
			sb.WriteString("\n")
			continue
		}

		if len(plain) >= helpColumn {
			// no room left on the flag line
			sb.WriteString("\n" + pad)
		} else {
			sb.WriteString(strings.Repeat(" ", helpColumn-len(plain)))
		}

		lines := strings.Split(wordwrap.WrapString(help, uint(width)), "\n")
		sb.WriteString(lines[0] + "\n")
		for _, line := range lines[1:] {
			sb.WriteString(pad + line + "\n")
		}
	}
	return sb.String()
}

// flagColumn returns the left-hand cell of an option row, once without
// styling for width accounting and once as printed.
func flagColumn(o *Option) (plain, styled string) {
	var spellings []string
	if o.IsPositional() {
		spellings = append(spellings, o.positionalName)
	}
	if o.longFlag != "" {
		spellings = append(spellings, o.longFlag)
	}
	if o.shortFlag != "" {
		spellings = append(spellings, o.shortFlag)
	}
	names := strings.Join(spellings, ", ")

	plain = helpIndent + names
	styled = helpIndent + BoldS("%s", names)
	if m := o.Metavar(); m != "" && !o.IsPositional() {
		plain += " " + m
		styled += " " + CyanS("%s", m)
	}
	return plain, styled
}

func helpText(o *Option) string {
	h := o.help
	if d, ok := o.Default(); ok {
		h += fmt.Sprintf(" (default: %s)", d)
	}
	if o.required {
		h += " (required)"
	}
	return strings.TrimSpace(h)
}

func (p *Parser) effectiveWrapWidth() int {
	if p.wrapWidth > 0 {
		return p.wrapWidth
	}
	if f, ok := stdoutWriter.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	return defaultWidth
}
