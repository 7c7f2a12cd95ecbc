package annotate

import (
	"fmt"
	"log/slog"

	"github.com/toyz/annotate/internal/annotations"
	"github.com/toyz/annotate/internal/utils"
)

// Inspector is the entry point for annotation queries against a Host. Type
// wrappers are created on demand and cached, so repeated lookups share their
// parsed annotations. An Inspector is safe for concurrent use.
type Inspector struct {
	host      Host
	logger    *slog.Logger
	evaluator *annotations.Evaluator
	types     *utils.Cache[string, *Type]
}

// Option configures an Inspector
type Option func(*Inspector)

// WithLogger sets the logger used for debug records about skipped tags and
// parsed elements. Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Inspector) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// NewInspector creates an inspector over host. A nil host means the
// DefaultRegistry.
func NewInspector(host Host, opts ...Option) *Inspector {
	if host == nil {
		host = DefaultRegistry()
	}

	in := &Inspector{
		host:   host,
		logger: slog.New(slog.DiscardHandler),
		types:  utils.NewCache[string, *Type](),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.evaluator = annotations.NewEvaluator(in.resolveConstant)

	return in
}

// Host returns the host the inspector reads from
func (in *Inspector) Host() Host {
	return in.host
}

// Type returns the wrapper for the named type. It fails with
// ErrTypeNotFound when the host does not declare it.
func (in *Inspector) Type(name string) (*Type, error) {
	name = annotations.NormalizePath(name)

	var handle TypeHandle = metaKind
	if name != MetaKindName {
		h, ok := in.host.ResolveType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
		}
		handle = h
	}
	return in.wrap(handle), nil
}

// MustType is like Type but panics when the type is not declared
func (in *Inspector) MustType(name string) *Type {
	t, err := in.Type(name)
	if err != nil {
		panic(err)
	}
	return t
}

// wrap returns the cached wrapper for handle, creating it on first use
func (in *Inspector) wrap(handle TypeHandle) *Type {
	t, _ := in.types.GetOrLoad(handle.Name(), func() (*Type, error) {
		in.logger.Debug("wrapping type", "type", handle.Name())
		return newType(in, handle), nil
	})
	return t
}
