package prompt_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"signaldedup/internal/prompt"
)

func TestConfirmAnswers(t *testing.T) {
	cases := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"Ye\n", false, true},
		{"  no  \n", true, false},
		{"N\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"yes", false, true},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := prompt.New(strings.NewReader(tc.input), &out).Confirm("Proceed?", tc.defaultYes)
		if err != nil {
			t.Fatalf("input %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("input %q default %v: got %v want %v", tc.input, tc.defaultYes, got, tc.want)
		}
	}
}

func TestConfirmSuffixReflectsDefault(t *testing.T) {
	var out bytes.Buffer
	if _, err := prompt.New(strings.NewReader("\n"), &out).Confirm("Copy?", true); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Copy? [Y/n] " {
		t.Fatalf("unexpected prompt %q", out.String())
	}

	out.Reset()
	if _, err := prompt.New(strings.NewReader("\n"), &out).Confirm("Copy?", false); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Copy? [y/N] " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestConfirmRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt.New(strings.NewReader("maybe\nsure\nn\n"), &out).Confirm("Delete?", true)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("expected final answer no")
	}
	if n := strings.Count(out.String(), "Please respond with 'yes' or 'no'"); n != 2 {
		t.Fatalf("expected 2 retry messages, got %d in %q", n, out.String())
	}
	if n := strings.Count(out.String(), "Delete? [Y/n] "); n != 3 {
		t.Fatalf("expected the question 3 times, got %d", n)
	}
}

func TestConfirmEOFIsNo(t *testing.T) {
	for _, input := range []string{"", "maybe"} {
		var out bytes.Buffer
		got, err := prompt.New(strings.NewReader(input), &out).Confirm("Copy?", true)
		if err != nil {
			t.Fatalf("input %q: %v", input, err)
		}
		if got {
			t.Fatalf("input %q: end of input must answer no", input)
		}
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestConfirmReadError(t *testing.T) {
	var out bytes.Buffer
	if _, err := prompt.New(brokenReader{}, &out).Confirm("Copy?", true); err == nil {
		t.Fatal("expected read error")
	}
}
