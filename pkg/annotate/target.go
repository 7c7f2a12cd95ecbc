package annotate

import (
	"fmt"
	"reflect"
	"strings"
)

// MetaKindName is the name of the built-in kind that restricts where other
// kinds may appear
const MetaKindName = "AnnotationTarget"

// AnnotationTarget restricts the element categories the kind it decorates
// may be attached to. Value is one category or a list of categories, usually
// written with the ElementType constants:
//
//	@AnnotationTarget(ElementType.METHOD)
//	@AnnotationTarget(value=[ElementType.TYPE, ElementType.PROPERTY])
type AnnotationTarget struct {
	Annotation
	Value any `annotate:"value"`
}

// Mask folds Value into a category bitmask. Lists are OR-ed together; an
// absent value is the empty mask.
func (t *AnnotationTarget) Mask() (ElementCategory, error) {
	return categoryMask(t.Value)
}

func categoryMask(value any) (ElementCategory, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case ElementCategory:
		return v, nil
	case []any:
		var mask ElementCategory
		for _, item := range v {
			m, err := categoryMask(item)
			if err != nil {
				return 0, err
			}
			mask |= m
		}
		return mask, nil
	}

	rv := reflect.ValueOf(value)
	if rv.CanInt() {
		return ElementCategory(rv.Int()), nil
	}
	return 0, fmt.Errorf("%v (%T) is not an element category", value, value)
}

const metaKindDoc = `@AnnotationTarget(value=ElementType.ANNOTATION_TYPE)`

// metaKind is resolvable from every host and shadows any declared type with
// the same name
var metaKind = mustKind[AnnotationTarget](WithName(MetaKindName), WithDoc(metaKindDoc))

func mustKind[T any](opts ...KindOption) *Kind {
	k, err := NewKind[T](opts...)
	if err != nil {
		panic(err)
	}
	return k
}

// builtinConstant resolves the ElementType.NAME constants. The longer
// AnnotatedElementType prefix is accepted as well.
func builtinConstant(path string) (any, bool) {
	for _, prefix := range []string{"ElementType.", "AnnotatedElementType."} {
		if name, ok := strings.CutPrefix(path, prefix); ok {
			category, found := elementTypeConstants[name]
			return category, found
		}
	}
	return nil, false
}
