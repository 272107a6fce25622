package optionparser

// endOfArgs stands in for the token after the last one. It is flag-like so
// greedy consumption stops on it, and it is never compared by value.
const endOfArgs = "- "

// tokens is a cursor over the user-supplied arguments.
type tokens struct {
	slice []string
	index int
}

func newTokens(args []string) *tokens {
	return &tokens{slice: args}
}

func (t *tokens) done() bool {
	return t.index >= len(t.slice)
}

func (t *tokens) current() string {
	if t.done() {
		return endOfArgs
	}
	return t.slice[t.index]
}

// peek returns the token after the current one, or the sentinel.
func (t *tokens) peek() (string, bool) {
	if t.index+1 < len(t.slice) {
		return t.slice[t.index+1], true
	}
	return endOfArgs, false
}

func (t *tokens) advance() {
	t.index++
}

// nextIf advances onto the following token when it satisfies f.
func (t *tokens) nextIf(f func(string) bool) (string, bool) {
	v, ok := t.peek()
	if ok && f(v) {
		t.index++
		return v, true
	}
	return "", false
}

// takeValues consumes following tokens until a flag-like one or the end.
func (t *tokens) takeValues() []string {
	var out []string
	for {
		v, ok := t.nextIf(func(s string) bool { return !isFlagLike(s) })
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
