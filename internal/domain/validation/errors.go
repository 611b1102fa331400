// Package validation carries the field-scoped error model shared by every
// form the academy accepts, together with its message catalog.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FieldError reports one violated rule on one input field. Message is
// rendered in DefaultLanguage; Localize re-renders it for another tag.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`

	key  string
	args []any
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is the non-short-circuiting result of validating a form.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field already carries an error.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Field returns the first error attached to field.
func (e Errors) Field(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Localize returns a copy with every message rendered for tag.
func (e Errors) Localize(tag language.Tag) Errors {
	p := message.NewPrinter(tag)
	out := make(Errors, len(e))
	for i, fe := range e {
		fe.Message = render(p, fe.key, fe.args)
		out[i] = fe
	}
	return out
}

// Collector accumulates field errors in evaluation order.
type Collector struct {
	errs    Errors
	printer *message.Printer
}

// NewCollector returns a collector rendering messages in DefaultLanguage.
func NewCollector() *Collector {
	return &Collector{printer: message.NewPrinter(DefaultLanguage)}
}

// Add records a violation. key is a catalog message key (an English format string).
func (c *Collector) Add(field, rule, key string, args ...any) {
	c.errs = append(c.errs, FieldError{
		Field:   field,
		Rule:    rule,
		Message: render(c.printer, key, args),
		key:     key,
		args:    args,
	})
}

// Has reports whether field already failed a check.
func (c *Collector) Has(field string) bool {
	return c.errs.Has(field)
}

// Err returns nil when nothing was collected, otherwise the Errors value.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	out := make(Errors, len(c.errs))
	copy(out, c.errs)
	return out
}

// Required checks that value is not blank.
func (c *Collector) Required(field, value, key string) bool {
	if TrimForm(value) == "" {
		c.Add(field, RuleRequired, key)
		return false
	}
	return true
}

// MinLength checks the lower length bound.
func (c *Collector) MinLength(field, value string, min int, key string) bool {
	if Length(value) < min {
		c.Add(field, RuleMinLength, key, min)
		return false
	}
	return true
}

// MaxLength checks the upper length bound.
func (c *Collector) MaxLength(field, value string, max int, key string) bool {
	if Length(value) > max {
		c.Add(field, RuleMaxLength, key, max)
		return false
	}
	return true
}

// Email checks that value is a bare address such as aluno@example.com.
func (c *Collector) Email(field, value, key string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		c.Add(field, RuleFormat, key)
		return false
	}
	return true
}

// OneOf checks enum membership.
func (c *Collector) OneOf(field, value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	c.Add(field, RuleOneOf, MsgInvalidOption, value, strings.Join(allowed, ", "))
	return false
}

// Rule identifiers exposed on FieldError.Rule.
const (
	RuleRequired  = "required"
	RuleMinLength = "min_length"
	RuleMaxLength = "max_length"
	RuleOneOf     = "one_of"
	RuleFormat    = "format"
)

func render(p *message.Printer, key string, args []any) string {
	if len(args) == 0 {
		return p.Sprintf(key)
	}
	return p.Sprintf(key, args...)
}

// Sprintf renders a catalog message outside of field validation.
func Sprintf(tag language.Tag, key string, args ...any) string {
	return render(message.NewPrinter(tag), key, args)
}

var _ error = Errors(nil)

// String implements fmt.Stringer for debugging.
func (e FieldError) String() string {
	return fmt.Sprintf("%s[%s]: %s", e.Field, e.Rule, e.Message)
}
