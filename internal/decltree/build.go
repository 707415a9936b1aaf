package decltree

import (
	"go/ast"
	"go/token"
	"strings"
)

// Build constructs the declaration tree for one parsed file. pkgPath
// becomes the package node's qualified title. Children preserve exact
// source declaration order; methods are folded into their receiver type's
// container at the container's position.
func Build(fset *token.FileSet, file *ast.File, pkgPath string) *Package {
	ix := NewCommentIndex(fset, file)

	pkg := &Package{Path: pkgPath}
	if file.Doc != nil {
		pkg.Doc = []Comment{{Text: file.Doc.Text(), Pos: fset.Position(file.Doc.Pos())}}
	}

	containers := make(map[string]*Container)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			switch d.Tok {
			case token.TYPE:
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					doc := specDoc(ix, d, ts)
					if ts.Assign != 0 {
						// Type alias: no members of its own.
						pkg.Children = append(pkg.Children, &Leaf{Name: ts.Name.Name, Doc: doc})
						continue
					}
					c := &Container{Name: ts.Name.Name, Doc: doc}
					containers[c.Name] = c
					pkg.Children = append(pkg.Children, c)
				}
			case token.CONST, token.VAR:
				for _, spec := range d.Specs {
					vs, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					pkg.Children = append(pkg.Children, &Leaf{
						Name: specNames(vs),
						Doc:  specDoc(ix, d, vs),
					})
				}
			default:
				pkg.Children = append(pkg.Children, &Unsupported{})
			}

		case *ast.FuncDecl:
			leaf := &Leaf{Name: d.Name.Name, Doc: ix.Leading(d)}
			if d.Recv == nil {
				pkg.Children = append(pkg.Children, leaf)
				continue
			}
			base := receiverName(d.Recv)
			if base == "" {
				pkg.Children = append(pkg.Children, leaf)
				continue
			}
			c, ok := containers[base]
			if !ok {
				// Receiver type declared elsewhere: the methods still
				// nest under the type's name.
				c = &Container{Name: base}
				containers[base] = c
				pkg.Children = append(pkg.Children, c)
			}
			c.Children = append(c.Children, leaf)

		default:
			pkg.Children = append(pkg.Children, &Unsupported{})
		}
	}

	return pkg
}

// specDoc gathers a specification's leading comments, including the
// enclosing declaration's when the spec is its only member.
func specDoc(ix *CommentIndex, decl *ast.GenDecl, spec ast.Spec) []Comment {
	var out []Comment
	if len(decl.Specs) == 1 {
		out = append(out, ix.Leading(decl)...)
	}
	out = append(out, ix.Leading(spec)...)
	sortComments(out)
	return out
}

// specNames renders a value spec's name list: the single simple name, or
// the comma-joined list for multi-name bindings.
func specNames(vs *ast.ValueSpec) string {
	names := make([]string, len(vs.Names))
	for i, n := range vs.Names {
		names[i] = n.Name
	}
	return strings.Join(names, ", ")
}

// receiverName returns the base type name of a method receiver, with
// pointer and type-parameter decoration stripped.
func receiverName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}
	t := recv.List[0].Type
	for {
		switch tt := t.(type) {
		case *ast.StarExpr:
			t = tt.X
		case *ast.IndexExpr:
			t = tt.X
		case *ast.IndexListExpr:
			t = tt.X
		case *ast.ParenExpr:
			t = tt.X
		case *ast.Ident:
			return tt.Name
		default:
			return ""
		}
	}
}
