package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/annotate/internal/utils"
	"github.com/toyz/annotate/pkg/annotate"
)

type Route struct {
	annotate.Annotation
	Method string `annotate:"method"`
	Path   string `annotate:"path"`
}

func (r *Route) String() string { return r.Method + " " + r.Path }

type testOutput struct {
	diagnostics bytes.Buffer
	reports     bytes.Buffer
}

func newTestRunner(t *testing.T, cfg Config) (*Runner, *testOutput) {
	t.Helper()
	color.NoColor = true

	out := &testOutput{}
	diagnostics := utils.NewDiagnosticSystemTo(utils.DiagnosticInfo, &out.diagnostics, &out.diagnostics)
	diagnostics.SetColors(false)
	return NewRunner(cfg, diagnostics, NewDiagnosticReporter(false, &out.reports), nil), out
}

func newUsersInspector(t *testing.T) *annotate.Inspector {
	t.Helper()
	reg := annotate.NewRegistry()
	annotate.MustRegisterKind[Route](reg, annotate.WithTarget(annotate.CategoryMethod))
	require.NoError(t, reg.RegisterType(annotate.TypeDecl{
		Name: "Users",
		Methods: []annotate.MethodDecl{
			{Name: "List", Doc: `@Route("GET", "/users")`},
			{Name: "Delete"},
		},
		Properties: []annotate.PropertyDecl{
			{Name: "store", Doc: `@Route("GET", "/")`},
		},
	}))
	return annotate.NewInspector(reg)
}

func TestRunner_Report(t *testing.T) {
	runner, out := newTestRunner(t, Config{})

	summary, err := runner.Report(newUsersInspector(t), []string{"Users"})
	require.Error(t, err)

	var tv *annotate.TargetViolation
	require.True(t, errors.As(err, &tv))
	assert.Equal(t, "Users.store", tv.Element)

	want := &Summary{
		Types:       1,
		Elements:    1,
		Annotations: 1,
		Failures:    1,
		Report: []TypeReport{{
			Name: "Users",
			Elements: []ElementReport{{
				Element:     "Users.List",
				Category:    "METHOD",
				Annotations: map[string]string{"Route": "GET /users"},
			}},
		}},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, out.diagnostics.String(), "Users.List [METHOD] @Route GET /users")
	assert.Contains(t, out.reports.String(), "x Users.store")
	assert.Contains(t, out.reports.String(), "TargetViolation: invalid annotation \"Route\" for \"Users.store\"")
	assert.Contains(t, out.reports.String(), "Hint: Move @Route")
}

func TestRunner_ReportTypeFilter(t *testing.T) {
	runner, out := newTestRunner(t, Config{Types: []string{"Rou*", "Ghost"}})

	summary, err := runner.Report(newUsersInspector(t), []string{"Route", "Users"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Types)
	assert.NotContains(t, out.diagnostics.String(), "Users")
	assert.Contains(t, out.reports.String(), `! type "Ghost" was not found in the loaded packages`)
}

func TestRunner_ReportUnknownType(t *testing.T) {
	runner, out := newTestRunner(t, Config{})

	summary, err := runner.Report(newUsersInspector(t), []string{"Missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, annotate.ErrTypeNotFound))
	assert.Equal(t, 1, summary.Failures)
	assert.Contains(t, out.reports.String(), "x Missing")
}

func TestRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n\ngo 1.21\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.go"), []byte(`package app

type Annotation struct{}

// Route maps a handler.
// @AnnotationTarget(ElementType.METHOD)
type Route struct {
	Annotation
	Path string
}

// Users serves users.
type Users struct{}

// List lists users.
// @Route(Path="/users")
func (u *Users) List() {}
`), 0644))

	runner, out := newTestRunner(t, Config{Dir: dir, Patterns: []string{"./..."}})
	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Packages)
	assert.Equal(t, 3, summary.Types)
	assert.Equal(t, 2, summary.Annotations)
	assert.Contains(t, out.diagnostics.String(), "Route [ANNOTATION_TYPE|TYPE] @AnnotationTarget")
	assert.Contains(t, out.diagnostics.String(), "Users.List [METHOD] @Route (Path=/users)")
}

func TestFormatAnnotation(t *testing.T) {
	kind, err := annotate.NewRecordKind("Table", []string{"name", "schema"})
	require.NoError(t, err)
	record, err := kind.New([]any{"users", "public"})
	require.NoError(t, err)

	type plain struct{ Name string }

	assert.Equal(t, "(name=users, schema=public)", FormatAnnotation(record))
	assert.Equal(t, "GET /", FormatAnnotation(&Route{Method: "GET", Path: "/"}))
	assert.Equal(t, "{Name:x}", FormatAnnotation(plain{Name: "x"}))
}

func TestCanonicalNames(t *testing.T) {
	names := canonicalNames([]string{"Route", "app.Route", "Users", "app.Users"})
	assert.Equal(t, []string{"Route", "Users"}, names)
}

func TestConfig_WantsType(t *testing.T) {
	assert.True(t, (&Config{}).wantsType("Users"))

	cfg := &Config{Types: []string{"Users", "*Handler"}}
	assert.True(t, cfg.wantsType("Users"))
	assert.True(t, cfg.wantsType("AuthHandler"))
	assert.False(t, cfg.wantsType("Route"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Config{}},
		{name: "yaml with patterns", cfg: Config{Format: FormatYAML, Types: []string{"User*", "{Route,Table}"}}},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: `unknown output format "xml"`},
		{name: "bad pattern", cfg: Config{Types: []string{"User["}}, wantErr: `invalid type pattern "User["`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
