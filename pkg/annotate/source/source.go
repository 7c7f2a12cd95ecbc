// Package source implements an annotate.Host over Go source code. Doc
// comments come from the parsed files and constants from the type checker.
//
// A struct type that embeds a type named Annotation (annotate.Annotation or
// a local marker) is an annotation kind; its fields are the kind's
// properties, named by their `annotate` tag when present. A function NewT
// is the constructor of type T.
package source

import (
	"context"
	"errors"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	annotateerrors "github.com/toyz/annotate/internal/errors"
	"github.com/toyz/annotate/pkg/annotate"
)

// Config controls how packages are loaded
type Config struct {
	Dir        string   // directory patterns are resolved in; empty means the current one
	BuildFlags []string // passed to the go command, e.g. -tags=integration
	Env        []string // environment for the go command; nil inherits
	Tests      bool     // include _test.go files
	Logger     *slog.Logger
}

// Host is a registry filled from loaded packages. Types and kinds are
// registered under their name and their package-qualified name.
type Host struct {
	*annotate.Registry
	packages []string
	logger   *slog.Logger
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Load loads the packages matching patterns and collects their documented
// types, kinds and constants
func Load(ctx context.Context, cfg Config, patterns ...string) (*Host, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pkgs, err := packages.Load(&packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        cfg.Dir,
		BuildFlags: cfg.BuildFlags,
		Env:        cfg.Env,
		Tests:      cfg.Tests,
	}, patterns...)
	if err != nil {
		return nil, annotateerrors.NewLoadError(strings.Join(patterns, " "), err)
	}

	var loadErrs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e)
		}
	})
	if len(loadErrs) > 0 {
		return nil, annotateerrors.NewLoadError(strings.Join(patterns, " "), errors.Join(loadErrs...))
	}

	h := &Host{
		Registry: annotate.NewRegistry(),
		logger:   logger,
	}
	for _, pkg := range pkgs {
		h.packages = append(h.packages, pkg.PkgPath)
		h.collect(pkg)
	}

	logger.Debug("loaded source host",
		slog.Int("packages", len(h.packages)),
		slog.Int("types", len(h.TypeNames())))

	return h, nil
}

// Packages returns the import paths of the loaded packages
func (h *Host) Packages() []string {
	return h.packages
}

// collect registers every type declaration and constant of pkg
func (h *Host) collect(pkg *packages.Package) {
	decls := make(map[string]*typeDecl)
	var order []string

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				d := &typeDecl{
					name: ts.Name.Name,
					doc:  doc.Text(),
					loc:  position(pkg.Fset, ts.Pos()),
				}
				if st, ok := ts.Type.(*ast.StructType); ok {
					d.kind = collectFields(pkg.Fset, st, d)
				}
				decls[d.name] = d
				order = append(order, d.name)
			}
		}
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			m := &memberHandle{name: fn.Name.Name, doc: fn.Doc.Text(), loc: position(pkg.Fset, fn.Pos())}
			if fn.Recv != nil && len(fn.Recv.List) > 0 {
				if d, ok := decls[receiverName(fn.Recv.List[0].Type)]; ok {
					d.methods = append(d.methods, m)
				}
				continue
			}
			if target, ok := strings.CutPrefix(fn.Name.Name, "New"); ok {
				if d, ok := decls[target]; ok {
					m.constructor = true
					d.methods = append(d.methods, m)
				}
			}
		}
	}

	for _, name := range order {
		h.register(pkg.Name, decls[name])
	}
	h.collectConstants(pkg)
}

func (h *Host) register(pkgName string, d *typeDecl) {
	handle, err := d.handle()
	if err != nil {
		h.logger.Warn("skipping type", slog.String("type", d.name), slog.Any("error", err))
		return
	}
	for _, name := range []string{d.name, pkgName + "." + d.name} {
		if err := h.RegisterAs(name, handle); err != nil {
			h.logger.Debug("type name already taken", slog.String("name", name), slog.Any("error", err))
		}
	}
}

// collectConstants registers package-level constants as Name, pkg.Name and,
// for constants of a named type, TypeName.Name
func (h *Host) collectConstants(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		value, ok := constantValue(c.Val())
		if !ok {
			continue
		}

		paths := []string{name, pkg.Name + "." + name}
		if named, ok := c.Type().(*types.Named); ok && named.Obj().Pkg() == pkg.Types {
			paths = append(paths, named.Obj().Name()+"."+name)
		}
		for _, path := range paths {
			if err := h.RegisterConstant(path, value); err != nil {
				h.logger.Debug("constant path already taken", slog.String("path", path))
			}
		}
	}
}

// constantValue converts a typed constant into the evaluator's value types
func constantValue(v constant.Value) (any, bool) {
	switch v.Kind() {
	case constant.Bool:
		return constant.BoolVal(v), true
	case constant.String:
		return constant.StringVal(v), true
	case constant.Int:
		if n, exact := constant.Int64Val(v); exact {
			return n, true
		}
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return f, true
	}
	return nil, false
}

// typeDecl accumulates one type declaration before it becomes a handle
type typeDecl struct {
	name       string
	doc        string
	loc        annotate.SourceLocation
	kind       bool
	fields     []string // kind property names
	properties []*memberHandle
	methods    []*memberHandle
}

func (d *typeDecl) handle() (annotate.TypeHandle, error) {
	if d.kind {
		rk, err := annotate.NewRecordKind(d.name, d.fields, annotate.WithDoc(d.doc))
		if err != nil {
			return nil, err
		}
		return &kindHandle{RecordKind: rk, loc: d.loc}, nil
	}
	return &typeHandle{decl: d}, nil
}

// collectFields records the fields of st on d and reports whether st embeds
// a type named Annotation
func collectFields(fset *token.FileSet, st *ast.StructType, d *typeDecl) bool {
	isKind := false
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			if embeddedName(field.Type) == "Annotation" {
				isKind = true
			}
			continue
		}

		doc := field.Doc.Text()
		if doc == "" {
			doc = field.Comment.Text()
		}
		tag := fieldTag(field)
		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			name := ident.Name
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
			d.fields = append(d.fields, name)
			d.properties = append(d.properties, &memberHandle{
				name: ident.Name,
				doc:  doc,
				loc:  position(fset, ident.Pos()),
			})
		}
	}
	return isKind
}

func fieldTag(field *ast.Field) string {
	if field.Tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	name, _, _ := strings.Cut(reflect.StructTag(raw).Get("annotate"), ",")
	return name
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	}
	return ""
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

func position(fset *token.FileSet, pos token.Pos) annotate.SourceLocation {
	p := fset.Position(pos)
	return annotate.SourceLocation{File: p.Filename, Line: p.Line, Column: p.Column}
}
