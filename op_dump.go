package optionparser

import (
	"fmt"
	"os"
	"strings"
)

func (f FailurePolicy) String() string {
	switch f {
	case ExitOnFailure:
		return "exit_on_failure"
	case ReturnOnFailure:
		return "return_on_failure"
	}
	return fmt.Sprintf("FailurePolicy(%d)", int(f))
}

// GenerateDump describes the parser's configuration, the arguments it would
// parse and whatever values are currently stored.
func (p *Parser) GenerateDump(argv []string, opts ...ParseOpt) string {
	var sb strings.Builder

	sb.WriteString(GreenBoldS("Option Parser Dump") + "\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(p.dumpParseConfig(opts...))
	sb.WriteString(p.dumpParserInfo())
	sb.WriteString(dumpArguments(argv))
	sb.WriteString(p.dumpOptions())
	sb.WriteString(p.dumpValues())
	sb.WriteString(dumpEnvironment())
	return sb.String()
}

func (p *Parser) dumpParseConfig(opts ...ParseOpt) string {
	cfg := newParseCfg(opts)

	var sb strings.Builder
	sb.WriteString(GreenBoldS("Parse Configuration:") + "\n")
	sb.WriteString(fmt.Sprintf("  Ignore Unknown: %s\n", BoldS("%t", cfg.ignoreUnknown)))
	sb.WriteString(fmt.Sprintf("  Dump Enabled: %s\n", BoldS("%t", cfg.dump)))
	sb.WriteString("\n")
	return sb.String()
}

func (p *Parser) dumpParserInfo() string {
	var sb strings.Builder
	sb.WriteString(GreenBoldS("Parser Information:") + "\n")
	sb.WriteString(fmt.Sprintf("  Program: %s\n", BoldS("%s", p.displayName())))
	if p.description != "" {
		sb.WriteString(fmt.Sprintf("  Description: %s\n", BoldS("%s", p.description)))
	} else {
		sb.WriteString(fmt.Sprintf("  Description: %s\n", CyanS("<not set>")))
	}
	sb.WriteString(fmt.Sprintf("  Help Enabled: %s\n", BoldS("%t", p.helpEnabled)))
	sb.WriteString(fmt.Sprintf("  Failure Policy: %s\n", BoldS(p.failurePolicy.String())))
	if p.wrapWidth > 0 {
		sb.WriteString(fmt.Sprintf("  Wrap Width: %s\n", BoldS("%d", p.wrapWidth)))
	} else {
		sb.WriteString(fmt.Sprintf("  Wrap Width: %s\n", CyanS("auto")))
	}
	sb.WriteString("\n")
	return sb.String()
}

func dumpArguments(argv []string) string {
	args := argv
	if len(args) > 0 {
		args = args[1:]
	}

	var sb strings.Builder
	sb.WriteString(GreenBoldS("Arguments to Parse:") + "\n")
	if len(args) == 0 {
		sb.WriteString("  " + CyanS("<no arguments>") + "\n")
	}
	for i, arg := range args {
		sb.WriteString(fmt.Sprintf("  [%d]: %s\n", i, BoldS("%q", arg)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (p *Parser) dumpOptions() string {
	var sb strings.Builder
	sb.WriteString(GreenBoldS("Options (%d):", len(p.options)) + "\n")
	for i, o := range p.options {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, formatOptionForDump(o)))
	}
	sb.WriteString("\n")

	sb.WriteString(GreenBoldS("Positional Slots:") + "\n")
	if len(p.positional) == 0 {
		sb.WriteString("  " + CyanS("none") + "\n")
	}
	for i, o := range p.positional {
		sb.WriteString(fmt.Sprintf("  [%d] %s (%s)\n", i, BoldS("%s", o.positionalName), o.mode))
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatOptionForDump(o *Option) string {
	var spellings []string
	for _, s := range []string{o.longFlag, o.shortFlag, o.positionalName} {
		if s != "" {
			spellings = append(spellings, s)
		}
	}

	attrs := []string{o.mode.String()}
	if d, ok := o.Default(); ok {
		attrs = append(attrs, fmt.Sprintf("default=%q", d))
	}
	if o.required {
		attrs = append(attrs, "required")
	}
	if o.metavar != "" {
		attrs = append(attrs, "metavar="+o.metavar)
	}
	return fmt.Sprintf("%s: %s (%s)", BoldS("%s", o.dest), strings.Join(spellings, ", "), strings.Join(attrs, ", "))
}

func (p *Parser) dumpValues() string {
	var sb strings.Builder
	sb.WriteString(GreenBoldS("Stored Values:") + "\n")
	if p.values.Len() == 0 {
		sb.WriteString("  " + CyanS("<empty>") + "\n")
	}
	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", BoldS("%s", pair.Key), fmt.Sprintf("%q", pair.Value)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func dumpEnvironment() string {
	var sb strings.Builder
	sb.WriteString(GreenBoldS("Environment:") + "\n")
	if v := os.Getenv(colorEnvVar); v != "" {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", colorEnvVar, BoldS("%s", v)))
	} else {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", colorEnvVar, CyanS("not set")))
	}
	return sb.String()
}
