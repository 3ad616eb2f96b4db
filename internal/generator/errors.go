package generator

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GenerationError reports a node whose variant cannot be rendered: a nil
// statement or operand, or a literal without a value. Path locates the node,
// for example "body[1].test.left".
type GenerationError struct {
	Path string
	Node interface{}
}

func (e *GenerationError) Error() string {
	return "It is not a valid body!\nThe given piece of code: " + describeNode(e.Node)
}

func describeNode(node interface{}) string {
	data, err := json.Marshal(node)
	if err != nil {
		return fmt.Sprintf("%v", node)
	}
	return string(data)
}

// FormatError wraps a failure of the Formatter collaborator.
type FormatError struct {
	Language string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s: %v", e.Language, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ErrorAsOutput folds a Generate result into plain text the way the first
// version of the generator did: the generated text on success, the bare
// message of a generation or formatter failure, and empty text otherwise.
// Wrapping added by callers never shows up in the text.
func ErrorAsOutput(out string, err error) string {
	if err == nil {
		return out
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	var fmtErr *FormatError
	if errors.As(err, &fmtErr) {
		return fmtErr.Err.Error()
	}
	return ""
}
