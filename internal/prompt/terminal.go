package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/willibrandon/sqlcreds/internal/credentials"
)

var (
	questionFormat    = color.New(color.FgCyan, color.Bold).SprintFunc()
	placeholderFormat = color.New(color.FgHiBlack).SprintFunc()
	choiceFormat      = color.New(color.FgHiWhite).SprintFunc()
	errorFormat       = color.New(color.FgHiRed).SprintFunc()
)

// TerminalPrompter asks questions one line at a time on a terminal or any
// line-oriented stream.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal file descriptor used for masked input, or -1.
	fd int
}

// NewTerminalPrompter creates a prompter reading from in and writing to out.
// Password questions are read without echo when in is a terminal.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	p := &TerminalPrompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Prompt asks every applicable question in order. ShouldAsk is evaluated
// just before each question so earlier answers are visible to later ones.
func (p *TerminalPrompter) Prompt(ctx context.Context, questions []Question, c *credentials.Credentials) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !q.Ask(c) {
			continue
		}

		value, ok, err := p.ask(q)
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintln(p.out)
			return nil, nil
		}

		answers[q.Name] = value
		if q.Apply != nil {
			q.Apply(c, value)
		}
	}
	return answers, nil
}

// ask repeats q until an answer passes validation. ok is false on EOF.
func (p *TerminalPrompter) ask(q Question) (value string, ok bool, err error) {
	for {
		p.printQuestion(q)

		if q.Type == Password {
			value, ok, err = p.readSecret()
		} else {
			value, ok, err = p.readLine()
		}
		if err != nil || !ok {
			return "", ok, err
		}

		if q.Type == List {
			value, err = resolveChoice(q.Choices, value)
			if err != nil {
				fmt.Fprintln(p.out, errorFormat(err.Error()))
				continue
			}
		}

		if err := q.Check(value); err != nil {
			fmt.Fprintln(p.out, errorFormat(err.Error()))
			continue
		}
		return value, true, nil
	}
}

func (p *TerminalPrompter) printQuestion(q Question) {
	if q.Type == List {
		fmt.Fprintln(p.out, questionFormat(q.Message))
		for i, choice := range q.Choices {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, choiceFormat(choice.Name))
		}
		fmt.Fprint(p.out, "Choose [1]: ")
		return
	}

	fmt.Fprint(p.out, questionFormat(q.Message))
	if q.Placeholder != "" {
		fmt.Fprint(p.out, " ", placeholderFormat("("+q.Placeholder+")"))
	}
	fmt.Fprint(p.out, ": ")
}

func (p *TerminalPrompter) readLine() (string, bool, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", false, nil
			}
		} else {
			return "", false, fmt.Errorf("read answer: %w", err)
		}
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

func (p *TerminalPrompter) readSecret() (string, bool, error) {
	if p.fd < 0 {
		return p.readLine()
	}

	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read password: %w", err)
	}
	return string(secret), true, nil
}

// resolveChoice accepts a 1-based index, a choice name or a choice value.
// An empty answer selects the first choice.
func resolveChoice(choices []AuthChoice, answer string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no choices available")
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return choices[0].Value, nil
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1].Value, nil
		}
		return "", fmt.Errorf("choose a number between 1 and %d", len(choices))
	}
	for _, choice := range choices {
		if strings.EqualFold(answer, choice.Name) || strings.EqualFold(answer, choice.Value) {
			return choice.Value, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q", answer)
}
