// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure the CLI can explain to the player: the
	// step ksatool was taking, the game directory or file involved, what to
	// try next and, optionally, the help page to render.
	//
	//	return issue.NewErrorContext().
	//		WithOperation("detect game version").
	//		WithResource(gameDir).
	//		WithIssue(issue.VersionNotDetectedId).
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		Operation   string
		Resource    string
		Suggestions []string
		Cause       error
		Issue       Id
	}

	// ErrorContext accumulates the fields of an ActionableError. A context can
	// be prepared before the failing call and finished with Wrap.
	ErrorContext struct {
		draft ActionableError
	}
)

// NewErrorContext starts an empty ActionableError.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext attaches operation and resource to err. A nil err stays nil.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format is the message printed when no help page is linked. Suggestions
// follow as a bullet list; verbose output also walks the cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if e.HasSuggestions() {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
		}
	}

	return b.String()
}

// HelpPage returns the linked issue, or nil.
func (e *ActionableError) HelpPage() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation names the step that failed as a verb phrase, e.g.
// "import builds".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

// WithResource names the directory or file the step worked on.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithSuggestion appends one hint; hints print in the order given.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, sug)
	return c
}

func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.draft.Issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns a copy of the draft, or nil when no operation was set. The
// context may keep being used afterwards without affecting the result.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Suggestions = append([]string(nil), c.draft.Suggestions...)
	return &ae
}

// BuildError is Build typed as error, avoiding a typed-nil interface when no
// operation was set.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
