package docfold

import (
	"fmt"
	"go/token"
)

// MalformedCodeBlockError reports an embedded code block that does not
// parse under the configured example dialect. It is fatal to the whole
// run: a broken example must not silently disappear from the generated
// suite.
type MalformedCodeBlockError struct {
	Position token.Position
	Err      error
}

func (e *MalformedCodeBlockError) Error() string {
	return fmt.Sprintf("%s: malformed code block: %v", e.Position, e.Err)
}

func (e *MalformedCodeBlockError) Unwrap() error {
	return e.Err
}
