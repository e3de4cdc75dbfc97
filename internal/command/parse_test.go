package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  Command
	}{
		{input: "hello", ok: false},
		{input: "/", ok: true, want: Command{}},
		{input: "  /Find  the cat ", ok: true, want: Command{Name: "find", Args: []string{"the", "cat"}, Raw: "Find  the cat", Remainder: "the cat"}},
		{input: "/tabs", ok: true, want: Command{Name: "tabs", Args: []string{}, Raw: "tabs"}},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.input)
		if ok != tc.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", tc.input, ok, tc.ok)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestIntArg(t *testing.T) {
	cmd, _ := Parse("/tab 3")
	if n, err := cmd.IntArg("/tab <1-9>"); err != nil || n != 3 {
		t.Fatalf("expected 3, got %d (%v)", n, err)
	}
	for _, input := range []string{"/tab", "/tab x", "/tab 1 2"} {
		cmd, _ := Parse(input)
		if _, err := cmd.IntArg("/tab <1-9>"); err == nil || err.Error() != "usage: /tab <1-9>" {
			t.Fatalf("%q: expected usage error, got %v", input, err)
		}
	}
}
