package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"mcra/internal/domain"
	"mcra/internal/logging"
)

func newExtractor(max int, rules ...Rule) *ErrorExtractor {
	return NewErrorExtractor(max, logging.Discard(), rules...)
}

func TestErrorExtractor_Extract(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  domain.ErrMsg
	}{
		{
			name:  "single errmsg",
			lines: []string{"noise", `"errmsg" : "bad thing"`, "noise"},
			want:  domain.ErrMsg{Kind: domain.ErrMsgSingle, Values: []string{`"bad thing"`}},
		},
		{
			name:  "duplicates collapse to one",
			lines: []string{`[js_test:x] "errmsg" : "dup",`, `[js_test:x] "errmsg" : "dup",`},
			want:  domain.ErrMsg{Kind: domain.ErrMsgSingle, Values: []string{`"dup",`}},
		},
		{
			name: "distinct candidates keep log order",
			lines: []string{
				`"errmsg" : "second"`,
				`"errmsg" : "first"`,
				`"errmsg" : "second"`,
			},
			want: domain.ErrMsg{Kind: domain.ErrMsgMultiple, Values: []string{`"second"`, `"first"`}},
		},
		{
			name:  "uncaught exception fallback",
			lines: []string{"noise", "uncaught exception: TypeError: x"},
			want:  domain.ErrMsg{Kind: domain.ErrMsgSingle, Values: []string{"TypeError: x"}},
		},
		{
			name:  "errmsg wins over uncaught exception",
			lines: []string{"uncaught exception: TypeError: x", `"errmsg" : "server"`},
			want:  domain.ErrMsg{Kind: domain.ErrMsgSingle, Values: []string{`"server"`}},
		},
		{
			name:  "compact errmsg falls back to uncaught exception",
			lines: []string{`{"ok":0,"errmsg":"compact json"}`, "uncaught exception: TypeError: x"},
			want:  domain.ErrMsg{Kind: domain.ErrMsgSingle, Values: []string{"TypeError: x"}},
		},
		{
			name:  "blank captures from every rule yield empty",
			lines: []string{`{"errmsg":"compact"}`, "uncaught exception"},
			want:  domain.ErrMsg{Kind: domain.ErrMsgEmpty},
		},
		{
			name:  "blank capture is kept next to a real one",
			lines: []string{`{"errmsg":"compact"}`, `"errmsg" : "real"`},
			want:  domain.ErrMsg{Kind: domain.ErrMsgMultiple, Values: []string{"", `"real"`}},
		},
		{
			name:  "marker is case sensitive",
			lines: []string{`"ERRMSG" : "x"`, "Uncaught Exception: y"},
			want:  domain.ErrMsg{Kind: domain.ErrMsgEmpty},
		},
		{
			name:  "nothing found",
			lines: []string{"just noise"},
			want:  domain.ErrMsg{Kind: domain.ErrMsgEmpty},
		},
		{
			name:  "no lines",
			lines: []string{},
			want:  domain.ErrMsg{Kind: domain.ErrMsgEmpty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newExtractor(1000).Extract(tt.lines))
		})
	}
}

func TestErrorExtractor_Extract_CapsCandidates(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf(`"errmsg" : "e%d"`, i))
	}

	got := newExtractor(3).Extract(lines)
	assert.Equal(t, domain.ErrMsgMultiple, got.Kind)
	assert.Equal(t, []string{`"e0"`, `"e1"`, `"e2"`}, got.Values)

	// a single long candidate is never cut
	long := `"errmsg" : ` + fmt.Sprintf("%02000d", 7)
	single := newExtractor(3).Extract([]string{long})
	assert.Len(t, single.Values[0], 2000)
}

func TestErrorExtractor_CustomRules(t *testing.T) {
	assertion := NewRule("assert", `assert failed`, `assert failed: (\w+) != (\w+)`)

	got := newExtractor(10, assertion).Extract([]string{"assert failed: 1 != 2"})
	assert.Equal(t, domain.ErrMsg{Kind: domain.ErrMsgSingle, Values: []string{"12"}}, got)
}

func TestErrorExtractor_Process(t *testing.T) {
	failLines := []string{`"errmsg" : "boom"`}
	outcomes := []domain.TestOutcome{
		{TestFile: "a.js", Status: "pass", LogLines: failLines},
		{TestFile: "b.js", Status: "fail", LogLines: failLines},
		{TestFile: "c.js", Status: "fail"},
		{TestFile: "d.js", Status: "timeout", LogLines: []string{"nothing"}},
	}

	found := newExtractor(1000).Process(outcomes)

	assert.Equal(t, 1, found)
	assert.False(t, outcomes[0].ErrMsg.IsSet(), "pass never gets an errmsg")
	assert.Equal(t, `"boom"`, outcomes[1].ErrMsg.Text())
	assert.False(t, outcomes[2].ErrMsg.IsSet(), "uncorrelated outcomes are skipped")
	assert.Equal(t, domain.ErrMsgEmpty, outcomes[3].ErrMsg.Kind)
	assert.Equal(t, "[]", outcomes[3].ErrMsg.Text())
}
