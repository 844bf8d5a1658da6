package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrMsgKind tags the shape of an extracted error message.
type ErrMsgKind int

const (
	// ErrMsgNone means no extraction happened (passing or uncorrelated test).
	ErrMsgNone ErrMsgKind = iota
	// ErrMsgEmpty means extraction ran and found no candidate.
	ErrMsgEmpty
	// ErrMsgSingle holds exactly one distinct candidate.
	ErrMsgSingle
	// ErrMsgMultiple holds two or more distinct candidates, in order of appearance.
	ErrMsgMultiple
)

func (k ErrMsgKind) String() string {
	switch k {
	case ErrMsgEmpty:
		return "empty"
	case ErrMsgSingle:
		return "single"
	case ErrMsgMultiple:
		return "multiple"
	default:
		return "none"
	}
}

// ErrMsg is the error message extracted for a failing test.
type ErrMsg struct {
	Kind   ErrMsgKind
	Values []string
}

// NewErrMsg builds the variant matching the number of candidates.
func NewErrMsg(candidates []string) ErrMsg {
	switch len(candidates) {
	case 0:
		return ErrMsg{Kind: ErrMsgEmpty}
	case 1:
		return ErrMsg{Kind: ErrMsgSingle, Values: []string{candidates[0]}}
	default:
		values := make([]string, len(candidates))
		copy(values, candidates)
		return ErrMsg{Kind: ErrMsgMultiple, Values: values}
	}
}

// IsSet reports whether extraction produced a value, even an empty one.
func (e ErrMsg) IsSet() bool {
	return e.Kind != ErrMsgNone
}

// Text renders the message the way the report shows it, before CSV quoting:
// nothing for None, the string for Single, and a list literal otherwise.
func (e ErrMsg) Text() string {
	switch e.Kind {
	case ErrMsgSingle:
		return e.Values[0]
	case ErrMsgEmpty, ErrMsgMultiple:
		return formatList(e.Values)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (e ErrMsg) String() string {
	return e.Text()
}

// formatList renders values as a list literal such as ['a', "it's"].
func formatList(values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteItem(v))
	}
	b.WriteByte(']')
	return b.String()
}

// quoteItem prefers single quotes, switching to double quotes when the value
// holds a single quote and no double quote.
func quoteItem(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

type errMsgJSON struct {
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
}

// MarshalJSON keeps the variant tag in snapshots.
func (e ErrMsg) MarshalJSON() ([]byte, error) {
	return json.Marshal(errMsgJSON{Kind: e.Kind.String(), Values: e.Values})
}

// UnmarshalJSON restores a variant written by MarshalJSON.
func (e *ErrMsg) UnmarshalJSON(data []byte) error {
	var raw errMsgJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "", "none":
		e.Kind = ErrMsgNone
	case "empty":
		e.Kind = ErrMsgEmpty
	case "single":
		e.Kind = ErrMsgSingle
	case "multiple":
		e.Kind = ErrMsgMultiple
	default:
		return fmt.Errorf("unknown errmsg kind %q", raw.Kind)
	}
	e.Values = raw.Values
	if e.Kind == ErrMsgSingle && len(e.Values) != 1 {
		return fmt.Errorf("errmsg kind single needs exactly one value, got %d", len(e.Values))
	}
	return nil
}
