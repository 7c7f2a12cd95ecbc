package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_EmptyDoc(t *testing.T) {
	for _, doc := range []string{"", "   ", "\n\t\n"} {
		assert.Empty(t, CollectTags(doc), "doc %q", doc)
	}
}

func TestTags_CommentStyles(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"go doc text", "Users lists users.\n@Route(\"GET\")\n", "Route"},
		{"line comment", "// @Route(\"GET\")", "Route"},
		{"block comment", "/** @Route(\"GET\") */", "Route"},
		{"star continuation", "/**\n * Lists users.\n * @Route(\"GET\")\n */", "Route"},
		{"indented", "\t  @Route(\"GET\")", "Route"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := CollectTags(tt.doc)
			require.Len(t, tags, 1)
			assert.Equal(t, tt.want, tags[0].Name)
			assert.True(t, tags[0].HasArgs)
			assert.Equal(t, `"GET"`, tags[0].Args)
		})
	}
}

func TestTags_SkipsDocTags(t *testing.T) {
	doc := `Does things.
@param string $name
@return int
@author someone
@todo later
@Cached(ttl=60)
@Todo`

	tags := CollectTags(doc)
	require.Len(t, tags, 2)
	assert.Equal(t, "Cached", tags[0].Name)
	// Doc tag matching is case-sensitive
	assert.Equal(t, "Todo", tags[1].Name)
}

func TestTags_NotATag(t *testing.T) {
	doc := `Mail admin@example.com for access.
@1abc
@Foo-bar
@ leading space`

	assert.Empty(t, CollectTags(doc))
}

func TestTags_Description(t *testing.T) {
	tags := CollectTags("@Experimental may change without notice")
	require.Len(t, tags, 1)
	assert.Equal(t, "Experimental", tags[0].Name)
	assert.False(t, tags[0].HasArgs)
	assert.Empty(t, tags[0].Args)
}

func TestTags_QualifiedNames(t *testing.T) {
	tags := CollectTags("@http.Route(1)\n@Ns::Kind")
	require.Len(t, tags, 2)
	assert.Equal(t, "http.Route", tags[0].Name)
	assert.Equal(t, "Ns::Kind", tags[1].Name)
}

func TestTags_ArgumentsRunToLastParenthesis(t *testing.T) {
	tags := CollectTags(`@Match(pattern="(a|b)") trailing`)
	require.Len(t, tags, 1)
	assert.Equal(t, `pattern="(a|b)"`, tags[0].Args)
	assert.False(t, tags[0].Unclosed)
}

func TestTags_Unclosed(t *testing.T) {
	tags := CollectTags("@Foo(1, 2")
	require.Len(t, tags, 1)
	assert.True(t, tags[0].Unclosed)
	assert.Equal(t, "1, 2", tags[0].Args)
}

func TestTags_EmptyParentheses(t *testing.T) {
	tags := CollectTags("@Marker()")
	require.Len(t, tags, 1)
	assert.True(t, tags[0].HasArgs)
	assert.Empty(t, tags[0].Args)
}

func TestTags_LinesAndOrder(t *testing.T) {
	tags := CollectTags("first line\n@A\n\n@B(x)\n")
	require.Len(t, tags, 2)
	assert.Equal(t, "A", tags[0].Name)
	assert.Equal(t, 2, tags[0].Line)
	assert.Equal(t, "B", tags[1].Name)
	assert.Equal(t, 4, tags[1].Line)
	assert.Equal(t, "B(x)", tags[1].Raw)
}

func TestTags_StopsEarly(t *testing.T) {
	var seen []string
	for tag := range Tags("@A\n@B\n@C") {
		seen = append(seen, tag.Name)
		if tag.Name == "B" {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestIsDocTag(t *testing.T) {
	assert.True(t, IsDocTag("param"))
	assert.True(t, IsDocTag("deprec"))
	assert.False(t, IsDocTag("Param"))
	assert.False(t, IsDocTag("Route"))
	assert.Len(t, DocTags(), 26)
}
