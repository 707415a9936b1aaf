package suite

import (
	"fmt"
	"strings"
)

// TypeRef names one base type of the generated suite as an import path
// plus an exported type name.
type TypeRef struct {
	Path string
	Name string
}

// DefaultBase is the primary base embedded when no super types are
// configured. suite.Run requires the generated struct to satisfy
// testify's TestingSuite, which embedding this type provides.
var DefaultBase = TypeRef{Path: "github.com/stretchr/testify/suite", Name: "Suite"}

// ParseTypeRef splits "import/path.Name" into its parts. The split point
// is the last dot after the last slash, so dotted domains parse
// correctly.
func ParseTypeRef(s string) (TypeRef, error) {
	dot := strings.LastIndex(s, ".")
	if dot <= strings.LastIndex(s, "/") || dot == len(s)-1 {
		return TypeRef{}, fmt.Errorf("super type %q must have the form import/path.Name", s)
	}
	return TypeRef{Path: s[:dot], Name: s[dot+1:]}, nil
}

// PackageName returns the last segment of the import path, the name the
// generated code uses to qualify the type.
func (r TypeRef) PackageName() string {
	if i := strings.LastIndex(r.Path, "/"); i >= 0 {
		return r.Path[i+1:]
	}
	return r.Path
}

// Embed renders the embedded-field form, e.g. "suite.Suite".
func (r TypeRef) Embed() string {
	return r.PackageName() + "." + r.Name
}
