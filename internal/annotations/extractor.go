package annotations

import (
	"iter"
	"regexp"
	"strings"
)

// Tag is a single @Name(...) occurrence in a documentation comment
type Tag struct {
	Name     string // annotation name, e.g. "Route" or "pkg.Route"
	Args     string // raw text between the parentheses
	HasArgs  bool   // whether the tag carried a parenthesized list
	Unclosed bool   // an opening parenthesis without a closing one
	Line     int    // 1-based line within the comment
	Raw      string // tag text after the @ marker
}

var (
	// tagPattern matches an @ that starts a line, optionally after a comment
	// marker, and captures the rest of that line.
	tagPattern = regexp.MustCompile(`(?m)^[ \t]*(?:/\*+|\*+|//+)?[ \t]*@([^\r\n]*)`)

	// namePattern matches a tag name, optionally qualified with :: or .
	namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:(?:::|\.)[A-Za-z_][A-Za-z0-9_]*)*`)
)

// Tags returns the annotation tags found in doc, in source order.
// Conventional documentation tags are skipped. Empty or blank comments yield
// nothing.
func Tags(doc string) iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		if strings.TrimSpace(doc) == "" {
			return
		}

		for _, m := range tagPattern.FindAllStringSubmatchIndex(doc, -1) {
			// The name must follow the @ directly
			body := strings.TrimRight(doc[m[2]:m[3]], " \t")
			body = strings.TrimRight(strings.TrimSuffix(body, "*/"), " \t")

			tag, ok := parseTag(body)
			if !ok || IsDocTag(tag.Name) {
				continue
			}
			tag.Line = strings.Count(doc[:m[2]], "\n") + 1

			if !yield(tag) {
				return
			}
		}
	}
}

// CollectTags returns all tags of doc as a slice
func CollectTags(doc string) []Tag {
	var tags []Tag
	for tag := range Tags(doc) {
		tags = append(tags, tag)
	}
	return tags
}

// parseTag splits a tag body into its name and raw argument list.
// It returns false when the body does not start with a valid name.
func parseTag(body string) (Tag, bool) {
	name := namePattern.FindString(body)
	if name == "" {
		return Tag{}, false
	}

	tag := Tag{Name: name, Raw: body}
	rest := body[len(name):]
	if rest == "" {
		return tag, true
	}

	// A name must end at whitespace or an opening parenthesis
	if rest[0] != '(' && rest[0] != ' ' && rest[0] != '\t' {
		return Tag{}, false
	}

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "(") {
		// Free-form description after the name
		return tag, true
	}

	tag.HasArgs = true
	closing := strings.LastIndexByte(rest, ')')
	if closing < 0 {
		tag.Unclosed = true
		tag.Args = rest[1:]
		return tag, true
	}
	tag.Args = rest[1:closing]
	return tag, true
}
