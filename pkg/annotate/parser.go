package annotate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/toyz/annotate/internal/annotations"
	"github.com/toyz/annotate/internal/errors"
)

// visitChain lists the type wrappers whose annotations are being computed
// on the current call path
type visitChain struct {
	name string
	next *visitChain
}

func (c *visitChain) contains(name string) bool {
	for ; c != nil; c = c.next {
		if c.name == name {
			return true
		}
	}
	return false
}

func (c *visitChain) push(name string) *visitChain {
	return &visitChain{name: name, next: c}
}

// parse runs the full pipeline over an element's documentation: extract
// tags, resolve kinds, validate placement, evaluate arguments and
// instantiate. The first failure aborts the element.
func (in *Inspector) parse(el *element, chain *visitChain) (map[string]any, error) {
	result := make(map[string]any)

	for tag := range annotations.Tags(el.doc) {
		name := annotations.NormalizePath(tag.Name)

		// An unclosed list has no argument text to split; it only matters
		// for names that resolve to a kind
		if tag.Unclosed {
			if _, ok := in.resolveKind(name); !ok {
				in.logger.Debug("skipping unresolved tag",
					slog.String("tag", tag.Name), slog.String("element", el.name))
				continue
			}
			return nil, in.locate(errors.NewParseError(name,
				fmt.Sprintf("annotation %q is missing its closing parenthesis", tag.Name)), el)
		}

		// Arguments are split and evaluated before the name is resolved, so
		// malformed lists fail even on tags that are not kinds
		args, err := annotations.ParseArguments(name, tag.Args, in.evaluator)
		if err != nil {
			return nil, in.locate(err, el)
		}

		kind, ok := in.resolveKind(name)
		if !ok {
			in.logger.Debug("skipping unresolved tag",
				slog.String("tag", tag.Name), slog.String("element", el.name))
			continue
		}

		if err := in.validateTarget(kind, el, chain); err != nil {
			return nil, err
		}

		instance, err := in.instantiate(kind, args)
		if err != nil {
			return nil, in.locate(err, el)
		}

		result[kind.Name()] = instance
	}

	in.logger.Debug("parsed annotations",
		slog.String("element", el.name),
		slog.String("category", el.category.String()),
		slog.Int("count", len(result)))

	return result, nil
}

// resolveKind maps a tag name to an annotation kind. Names that resolve to
// nothing, or to a type that is not a kind, are not annotations.
func (in *Inspector) resolveKind(name string) (TypeHandle, bool) {
	name = annotations.NormalizePath(name)
	if name == MetaKindName {
		return metaKind, true
	}

	handle, ok := in.host.ResolveType(name)
	if !ok {
		return nil, false
	}
	if !handle.IsAnnotation() {
		in.logger.Debug("tag names a type that is not an annotation kind", slog.String("tag", name))
		return nil, false
	}
	return handle, true
}

func (in *Inspector) resolveConstant(path string) (any, bool) {
	path = annotations.NormalizePath(path)
	if value, ok := builtinConstant(path); ok {
		return value, true
	}
	return in.host.ResolveConstant(path)
}

// validateTarget checks that kind may decorate el
func (in *Inspector) validateTarget(kind TypeHandle, el *element, chain *visitChain) error {
	// The target kind's own declaration carries @AnnotationTarget
	if el.self == TypeHandle(metaKind) {
		return nil
	}

	allowed, err := in.targetOf(kind, chain)
	if err != nil {
		return err
	}
	if allowed == 0 || allowed.Intersects(el.category) {
		return nil
	}

	violation := errors.NewTargetViolation(kind.Name(), el.name, int(allowed), int(el.category))
	if !el.location.IsEmpty() {
		violation.WithLocation(el.location)
	}
	return violation
}

// targetOf returns the categories kind may decorate; zero means unrestricted.
// An explicit mask wins over the kind's own @AnnotationTarget tag.
func (in *Inspector) targetOf(kind TypeHandle, chain *visitChain) (ElementCategory, error) {
	if t, ok := kind.(targeted); ok {
		if mask, explicit := t.Target(); explicit {
			return mask, nil
		}
	}

	if chain.contains(kind.Name()) {
		return 0, errors.NewParseError(kind.Name(),
			fmt.Sprintf("annotation %q refers to itself while its target is being resolved", kind.Name()))
	}

	wrapper := in.wrap(kind)
	anns, err := wrapper.annotationsWith(chain)
	if err != nil {
		return 0, err
	}

	target, ok := anns[MetaKindName].(*AnnotationTarget)
	if !ok {
		return 0, nil
	}
	mask, err := target.Mask()
	if err != nil {
		return 0, errors.NewInvalidPropertyValue(MetaKindName, "value", err)
	}
	return mask, nil
}

// instantiate builds the annotation instance. Named properties are assigned
// after a zero-argument construction; otherwise positional arguments go to
// the constructor.
func (in *Inspector) instantiate(kind TypeHandle, args *annotations.Arguments) (any, error) {
	var (
		instance any
		err      error
	)

	if len(args.Named) > 0 {
		instance, err = kind.New(nil)
		if err != nil {
			return nil, asAnnotateError(kind.Name(), err)
		}
		for _, prop := range args.Named {
			if !kind.HasProperty(prop.Name) {
				return nil, errors.NewInvalidProperty(kind.Name(), prop.Name)
			}
			if err := kind.SetProperty(instance, prop.Name, prop.Value); err != nil {
				return nil, asAnnotateError(kind.Name(), err)
			}
		}
	} else {
		instance, err = kind.New(args.Positional)
		if err != nil {
			return nil, asAnnotateError(kind.Name(), err)
		}
	}

	if v, ok := kind.(validating); ok {
		if err := v.Validate(instance); err != nil {
			perr := errors.NewParseError(kind.Name(), fmt.Sprintf("annotation %q failed validation", kind.Name()))
			perr.WithCause(err)
			return nil, perr
		}
	}

	if in.logger.Enabled(context.Background(), slog.LevelDebug) {
		in.logger.Debug("instantiated annotation", slog.String("kind", kind.Name()), slog.Any("value", instance))
	}
	return instance, nil
}

// locate attaches the element's name and location to errors that lack them
func (in *Inspector) locate(err error, el *element) error {
	switch e := err.(type) {
	case *errors.ParseError:
		e.WithElement(el.name)
		if !el.location.IsEmpty() && e.Location().IsEmpty() {
			e.WithLocation(el.location)
		}
	case *errors.InvalidProperty:
		e.WithContext("element", el.name)
		if !el.location.IsEmpty() && e.Location().IsEmpty() {
			e.WithLocation(el.location)
		}
	}
	return err
}
