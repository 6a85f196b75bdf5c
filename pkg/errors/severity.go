// Package errors provides severity-aware error types.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// PipelineError is a structured error with context about the page element
// that produced it.
type PipelineError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Selector    string   `json:"selector,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *PipelineError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("[%s] %s: %s (selector: %s)", e.Severity, e.Code, e.Message, e.Selector)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Error codes
const (
	ErrCodeParseFailed     = "PARSE_FAILED"
	ErrCodePriceNotFound   = "PRICE_NOT_FOUND"
	ErrCodeElementNotFound = "ELEMENT_NOT_FOUND"
	ErrCodeBadQuantity     = "BAD_QUANTITY"
)

// NewPriceNotFoundError reports an item whose price text did not match the
// tolerant numeric pattern. Always recoverable: the item is skipped.
func NewPriceNotFoundError(selector, text string) *PipelineError {
	return &PipelineError{
		Code:        ErrCodePriceNotFound,
		Message:     fmt.Sprintf("no price found in text %q", text),
		Severity:    SeverityWarning,
		Selector:    selector,
		Recoverable: true,
	}
}

// NewElementNotFoundError reports a selector that matched nothing.
func NewElementNotFoundError(selector string) *PipelineError {
	return &PipelineError{
		Code:        ErrCodeElementNotFound,
		Message:     "expected element missing from page",
		Severity:    SeverityWarning,
		Selector:    selector,
		Recoverable: true,
	}
}

// NewParseFailedError reports an amount that matched the numeric pattern but
// could not be converted to a decimal.
func NewParseFailedError(selector, amount string) *PipelineError {
	return &PipelineError{
		Code:        ErrCodeParseFailed,
		Message:     fmt.Sprintf("could not parse amount %q", amount),
		Severity:    SeverityWarning,
		Selector:    selector,
		Recoverable: true,
	}
}

// NewBadQuantityError reports a quantity input that is not a positive
// integer; the pipeline degrades to quantity 1.
func NewBadQuantityError(value string) *PipelineError {
	return &PipelineError{
		Code:        ErrCodeBadQuantity,
		Message:     fmt.Sprintf("quantity %q is not a positive integer", value),
		Severity:    SeverityWarning,
		Recoverable: true,
	}
}
