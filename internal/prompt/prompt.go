package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
)

const retryMessage = "Please respond with 'yes' or 'no' (or 'y' or 'n')."

var answers = map[string]bool{
	"y":   true,
	"ye":  true,
	"yes": true,
	"n":   false,
	"no":  false,
}

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	fold cases.Caser
}

// New builds a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &Prompter{in: reader, out: out, fold: cases.Fold()}
}

// Confirm asks question until it gets a recognizable answer. An empty line
// selects defaultYes. End of input answers "no" so a closed stdin never
// authorizes a destructive step.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	suffix := " [y/N] "
	if defaultYes {
		suffix = " [Y/n] "
	}
	for {
		if _, err := fmt.Fprint(p.out, question+suffix); err != nil {
			return false, err
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		eof := errors.Is(err, io.EOF)
		answer := p.fold.String(strings.TrimSpace(line))

		if answer == "" {
			if eof {
				fmt.Fprintln(p.out)
				return false, nil
			}
			return defaultYes, nil
		}
		if value, ok := answers[answer]; ok {
			if eof {
				fmt.Fprintln(p.out)
			}
			return value, nil
		}
		if eof {
			fmt.Fprintln(p.out)
			return false, nil
		}
		fmt.Fprintln(p.out, retryMessage)
	}
}
