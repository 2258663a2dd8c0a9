// Package form holds the client-side tweet form and its length rules. These
// checks are a convenience for the user; the backend validates again.
package form

import (
	"strings"
	"unicode/utf8"

	"tweetboard/internal/model"
)

// Field messages shown next to the inputs.
const (
	MsgAuthorTooLong  = model.MsgAuthorTooLong
	MsgMessageTooLong = model.MsgMessageTooLong
	MsgAuthorBlank    = model.MsgAuthorBlank
	MsgMessageBlank   = model.MsgMessageBlank
)

// ValidationError lists the failing fields with their messages, keyed by the
// JSON field name ("author", "message").
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, key := range []string{"author", "message"} {
		if msg, ok := e.Fields[key]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Form is the two-field tweet form.
type Form struct {
	Author  string
	Message string
}

// Request converts the form into a creation payload.
func (f Form) Request() model.TweetRequest {
	return model.TweetRequest{Author: f.Author, Message: f.Message}
}

// Validate returns a *ValidationError when any field breaks its rule.
func (f Form) Validate() error {
	err := f.Request().Validate()
	if err == nil {
		return nil
	}

	fields, ok := model.FieldErrors(err)
	if !ok {
		return err
	}
	return &ValidationError{Fields: fields}
}

// AuthorError is the inline hint for the author input; empty while within bounds.
func (f Form) AuthorError() string {
	if utf8.RuneCountInString(f.Author) > model.MaxAuthorLength {
		return MsgAuthorTooLong
	}
	return ""
}

// MessageError is the inline hint for the message input.
func (f Form) MessageError() string {
	if utf8.RuneCountInString(f.Message) > model.MaxMessageLength {
		return MsgMessageTooLong
	}
	return ""
}

// RemainingCharacters counts down from the message limit; negative when over.
func (f Form) RemainingCharacters() int {
	return model.MaxMessageLength - utf8.RuneCountInString(f.Message)
}

// Reset clears both fields.
func (f *Form) Reset() {
	*f = Form{}
}
