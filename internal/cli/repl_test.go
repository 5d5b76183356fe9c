package cli

import (
	"testing"

	"github.com/bastiangx/symspell/internal/engine"
)

func TestFormatWithCommas(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{23135851162, "23,135,851,162"},
	}
	for _, c := range cases {
		if got := formatWithCommas(c.in); got != c.want {
			t.Errorf("formatWithCommas(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHandleCompleteBuildsCompleterLazily(t *testing.T) {
	d, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	d.CreateDictionaryEntry("love", 3000000, nil)

	r := NewREPL(d, engine.Closest, 2)
	if r.completer != nil {
		t.Fatalf("completer should be nil before first use")
	}
	r.handleLine("complete lo")
	if r.completer == nil {
		t.Fatalf("completer should be built after first complete command")
	}
}
