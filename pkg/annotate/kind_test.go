package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mode string

type Server struct {
	Annotation
	Name     string   `annotate:"name"`
	Port     int      `annotate:"port"`
	Level    uint8    `annotate:"level"`
	Ratio    float64  `annotate:"ratio"`
	Enabled  bool     `annotate:"enabled"`
	Tags     []string `annotate:"tags"`
	Mode     mode     `annotate:"mode"`
	Extra    any
	Internal string `annotate:"-"`
	hidden   string
}

func TestNewKind_Properties(t *testing.T) {
	kind, err := NewKind[Server]()
	require.NoError(t, err)

	assert.Equal(t, "Server", kind.Name())
	assert.True(t, kind.IsAnnotation())
	assert.Equal(t, []string{"name", "port", "level", "ratio", "enabled", "tags", "mode", "Extra"}, kind.Params())
	assert.True(t, kind.HasProperty("Extra"))
	assert.False(t, kind.HasProperty("Internal"))
	assert.False(t, kind.HasProperty("hidden"))
	assert.Len(t, kind.Properties(), 8)

	_, explicit := kind.Target()
	assert.False(t, explicit)
}

func TestKind_NewPositional(t *testing.T) {
	kind, err := NewKind[Server]()
	require.NoError(t, err)

	instance, err := kind.New([]any{"api", int64(8080), int64(3), int64(2), true, "blue", "fast", []any{int64(1)}})
	require.NoError(t, err)

	s := instance.(*Server)
	assert.Equal(t, "api", s.Name)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, uint8(3), s.Level)
	assert.Equal(t, 2.0, s.Ratio)
	assert.True(t, s.Enabled)
	assert.Equal(t, []string{"blue"}, s.Tags)
	assert.Equal(t, mode("fast"), s.Mode)
	assert.Equal(t, []any{int64(1)}, s.Extra)
}

func TestKind_MissingArgumentsKeepZeroValues(t *testing.T) {
	kind, err := NewKind[Server]()
	require.NoError(t, err)

	instance, err := kind.New([]any{"api"})
	require.NoError(t, err)
	s := instance.(*Server)
	assert.Equal(t, "api", s.Name)
	assert.Zero(t, s.Port)
	assert.Nil(t, s.Tags)
}

func TestKind_TooManyArguments(t *testing.T) {
	kind, err := NewKind[Server](WithParams("name"))
	require.NoError(t, err)

	_, err = kind.New([]any{"a", "b"})
	assert.Equal(t, ParseErrorCode, CodeOf(err))
}

func TestKind_SetProperty(t *testing.T) {
	kind, err := NewKind[Server]()
	require.NoError(t, err)
	instance, err := kind.New(nil)
	require.NoError(t, err)

	require.NoError(t, kind.SetProperty(instance, "tags", []any{"a", "b"}))
	require.NoError(t, kind.SetProperty(instance, "ratio", 1.25))
	require.NoError(t, kind.SetProperty(instance, "port", 80.0))
	require.NoError(t, kind.SetProperty(instance, "name", nil))

	s := instance.(*Server)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.Equal(t, 1.25, s.Ratio)
	assert.Equal(t, 80, s.Port)
	assert.Empty(t, s.Name)
}

func TestKind_ConversionFailures(t *testing.T) {
	kind, err := NewKind[Server]()
	require.NoError(t, err)

	tests := []struct {
		name     string
		property string
		value    any
	}{
		{"overflow", "level", int64(300)},
		{"negative unsigned", "level", int64(-1)},
		{"fraction into int", "port", 1.5},
		{"float at the int64 limit", "port", 9223372036854775807.0},
		{"float past the int64 limit", "port", 1e19},
		{"string into int", "port", "80"},
		{"int into string", "name", int64(1)},
		{"bad list element", "tags", []any{"a", int64(2)}},
		{"undeclared", "missing", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance, err := kind.New(nil)
			require.NoError(t, err)

			err = kind.SetProperty(instance, tt.property, tt.value)
			var ip *InvalidProperty
			require.True(t, errors.As(err, &ip), "got %v", err)
			assert.Equal(t, tt.property, ip.Property)
		})
	}
}

func TestKind_SetPropertyWrongInstance(t *testing.T) {
	kind, err := NewKind[Server]()
	require.NoError(t, err)

	err = kind.SetProperty(&MethodAnnotation{}, "name", "x")
	assert.Equal(t, InvalidPropertyCode, CodeOf(err))
}

func TestNewKind_Options(t *testing.T) {
	kind, err := NewKind[Server](
		WithName("http.Server"),
		WithDoc("@AnnotationTarget(ElementType.TYPE)"),
		WithTarget(CategoryType, CategoryProperty),
		WithParams("port", "name"),
	)
	require.NoError(t, err)

	assert.Equal(t, "http.Server", kind.Name())
	assert.Equal(t, "@AnnotationTarget(ElementType.TYPE)", kind.Doc())
	assert.Equal(t, []string{"port", "name"}, kind.Params())

	mask, explicit := kind.Target()
	assert.True(t, explicit)
	assert.Equal(t, CategoryType|CategoryProperty, mask)

	instance, err := kind.New([]any{int64(9), "x"})
	require.NoError(t, err)
	assert.Equal(t, 9, instance.(*Server).Port)
	assert.Equal(t, "x", instance.(*Server).Name)
}

func TestNewKind_Errors(t *testing.T) {
	type noMarker struct {
		Name string
	}
	type duplicate struct {
		Annotation
		A string `annotate:"x"`
		B string `annotate:"x"`
	}

	_, err := NewKind[noMarker]()
	assert.Equal(t, RegistrationErrorCode, CodeOf(err))

	_, err = NewKind[duplicate]()
	assert.Equal(t, RegistrationErrorCode, CodeOf(err))

	_, err = NewKind[int]()
	assert.Equal(t, RegistrationErrorCode, CodeOf(err))

	_, err = NewKind[Server](WithParams("nope"))
	assert.Equal(t, RegistrationErrorCode, CodeOf(err))
}

func TestKind_Validate(t *testing.T) {
	kind, err := NewKind[Server](WithValidator(func(s *Server) error {
		if s.Port == 0 {
			return errors.New("port is required")
		}
		return nil
	}))
	require.NoError(t, err)

	instance, err := kind.New(nil)
	require.NoError(t, err)
	assert.EqualError(t, kind.Validate(instance), "port is required")

	assert.Error(t, kind.Validate(&MethodAnnotation{}))
}
