package optionparser

type parseCfg struct {
	ignoreUnknown bool
	dump          bool
}

// ParseOpt adjusts a single parse call without changing the Parser.
type ParseOpt func(*parseCfg)

// WithIgnoreUnknown collects unmatched tokens into UnknownArgs instead of failing.
// Malformed tokens for known options still fail.
func WithIgnoreUnknown(ignore bool) ParseOpt {
	return func(c *parseCfg) {
		c.ignoreUnknown = ignore
	}
}

// WithDump stops after setup and writes a description of the parser.
func WithDump(dump bool) ParseOpt {
	return func(c *parseCfg) {
		c.dump = dump
	}
}

func newParseCfg(opts []ParseOpt) *parseCfg {
	cfg := &parseCfg{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
