package parser

import "regexp"

// Rule selects candidate lines and captures the error text in them
type Rule struct {
	Name string
	// Match selects the lines the rule looks at
	Match *regexp.Regexp
	// Extract captures the message; all groups of all matches in a line are
	// concatenated into one candidate
	Extract *regexp.Regexp
}

// NewRule compiles a rule, panicking on bad patterns like regexp.MustCompile.
func NewRule(name, match, extract string) Rule {
	return Rule{
		Name:    name,
		Match:   regexp.MustCompile(match),
		Extract: regexp.MustCompile(extract),
	}
}

// DefaultRules are tried in order: server error documents first, then
// uncaught shell exceptions.
func DefaultRules() []Rule {
	return []Rule{
		NewRule("errmsg", `"errmsg"`, `errmsg" : (.*)`),
		NewRule("uncaught exception", `uncaught exception`, `uncaught exception: (.*)`),
	}
}

// candidates returns the distinct per-line extractions of the rule, in order
// of first appearance.
func (r Rule) candidates(lines []string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, line := range lines {
		if !r.Match.MatchString(line) {
			continue
		}
		extracted := ""
		for _, m := range r.Extract.FindAllStringSubmatch(line, -1) {
			for _, group := range m[1:] {
				extracted += group
			}
		}
		if _, dup := seen[extracted]; dup {
			continue
		}
		seen[extracted] = struct{}{}
		out = append(out, extracted)
	}
	return out
}
