// Package prompt decides which credential fields are missing and collects
// them through an injected Prompter.
package prompt

import (
	"context"

	"github.com/willibrandon/sqlcreds/internal/credentials"
)

// QuestionType selects how an answer is collected.
type QuestionType int

const (
	// Input is free-form text.
	Input QuestionType = iota
	// Password is masked text.
	Password
	// List is a choice among a fixed set of values.
	List
)

// String returns the question type name.
func (t QuestionType) String() string {
	switch t {
	case Input:
		return "input"
	case Password:
		return "password"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Field names used as question identifiers and answer keys.
const (
	FieldServer             = "server"
	FieldDatabase           = "database"
	FieldAuthenticationType = "authenticationType"
	FieldUser               = "user"
	FieldPassword           = "password"
)

// Question describes one piece of missing information. The function values
// receive the credential explicitly instead of closing over it.
type Question struct {
	Name        string
	Type        QuestionType
	Message     string
	Placeholder string
	Choices     []AuthChoice

	// ShouldAsk reports whether the question applies to the current state.
	ShouldAsk func(c *credentials.Credentials) bool
	// Validate returns a user-facing error, or nil when the answer is accepted.
	Validate func(value string) error
	// Apply writes an accepted answer into the credential.
	Apply func(c *credentials.Credentials, value string)
}

// Ask reports whether q applies to c. A nil ShouldAsk always applies.
func (q Question) Ask(c *credentials.Credentials) bool {
	if q.ShouldAsk == nil {
		return true
	}
	return q.ShouldAsk(c)
}

// Check runs the validator, if any.
func (q Question) Check(value string) error {
	if q.Validate == nil {
		return nil
	}
	return q.Validate(value)
}

// Answers maps question names to the values collected for them.
type Answers map[string]string

// Prompter collects answers for questions against a credential. Prompt
// evaluates ShouldAsk and Validate itself and calls Apply for every accepted
// answer. A nil Answers with a nil error means the user cancelled.
type Prompter interface {
	Prompt(ctx context.Context, questions []Question, c *credentials.Credentials) (Answers, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, questions []Question, c *credentials.Credentials) (Answers, error)

// Prompt calls f.
func (f PrompterFunc) Prompt(ctx context.Context, questions []Question, c *credentials.Credentials) (Answers, error) {
	return f(ctx, questions, c)
}
