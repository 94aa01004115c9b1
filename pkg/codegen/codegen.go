// Package codegen implements the Orchestrator (§5): it drives the Schema,
// Content, Parameter, and Operation translators sequentially over one
// Component Registry and assembles their output into the emitted type
// catalog (§3 "Emitted type catalog").
package codegen

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/amer8/apigen/pkg/codegen/diag"
	"github.com/amer8/apigen/pkg/codegen/mangle"
	"github.com/amer8/apigen/pkg/codegen/operation"
	"github.com/amer8/apigen/pkg/codegen/registry"
	"github.com/amer8/apigen/pkg/codegen/schema"
	"github.com/amer8/apigen/pkg/codegen/typeast"
	apierrors "github.com/amer8/apigen/pkg/errors"
	"github.com/amer8/apigen/pkg/model"
)

// Mode selects which file the Generator emits (§6 "mode ∈ {types, client,
// server}").
type Mode string

const (
	ModeTypes  Mode = "types"
	ModeClient Mode = "client"
	ModeServer Mode = "server"
)

// Config is the Orchestrator's external configuration surface (§6): mode,
// access level, and feature flags.
type Config struct {
	Mode          Mode
	Access        typeast.Access
	SchemaOptions schema.Options
}

// DefaultConfig returns the Config a fresh CLI invocation uses absent
// explicit flags.
func DefaultConfig() Config {
	return Config{Mode: ModeTypes, Access: typeast.AccessPublic, SchemaOptions: schema.DefaultOptions()}
}

// Option configures a Config, mirroring pkg/converter.Option's functional-
// options style.
type Option func(*Config)

// WithMode selects which file the Generator emits.
func WithMode(mode Mode) Option {
	return func(c *Config) { c.Mode = mode }
}

// WithAccess sets the access level stamped onto every top-level symbol.
func WithAccess(access typeast.Access) Option {
	return func(c *Config) { c.Access = access }
}

// WithFeature toggles one of the documented feature flags by name ("base64"
// is the only one with a concrete effect today; unknown names are ignored,
// matching converter.Option's tolerance for toggles a given build doesn't
// recognize).
func WithFeature(name string, enabled bool) Option {
	return func(c *Config) {
		if name == "base64" {
			c.SchemaOptions.EnableBase64 = enabled
		}
	}
}

// NewConfig builds a Config from DefaultConfig plus opts, applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Result is the outcome of one Generator.Generate call.
type Result struct {
	RunID       string
	Program     *typeast.Program
	Operations  []*typeast.OperationDecl
	Diagnostics []diag.Diagnostic
}

// Summary renders a one-line human-readable count of the run's output,
// mirroring the progress summaries the Converter prints for a format
// conversion (internal/cli), scaled up since one generation run touches far
// more declarations than one document conversion.
func (res *Result) Summary() string {
	declCount := 0
	if res.Program != nil {
		declCount = len(res.Program.All())
	}
	return fmt.Sprintf("run %s: %s declaration(s), %s operation(s)",
		res.RunID, humanize.Comma(int64(declCount)), humanize.Comma(int64(len(res.Operations))))
}

// Generator implements the Orchestrator. Each Generate call is
// self-contained: a fresh Registry, a fresh Namespace per translator, and a
// fresh correlation id, so concurrent Generate calls over distinct APIs
// never share mutable state (§5 "the registry, read-only").
type Generator struct {
	cfg Config
}

// New builds a Generator bound to cfg.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// NewWithOptions builds a Generator from DefaultConfig plus opts, the
// functional-options entry point mirroring pkg/converter.New(...Option).
func NewWithOptions(opts ...Option) *Generator {
	return New(NewConfig(opts...))
}

// Generate runs one full translation pass over api (§5 "invokes Types,
// Client, and Server translators sequentially over the same Component
// Registry"). Every diagnostic emitted during the run carries the same
// correlation id, so a caller watching a file across repeated regenerations
// (e.g. --watch) can tell runs apart.
func (g *Generator) Generate(api *model.API) (*Result, error) {
	runID := uuid.New().String()
	collector := diag.NewCollector(runID)

	reg := registry.New(api)
	reg.ValidateReferences(collector)

	mangler := mangle.Default
	sc := schema.NewTranslator(reg, collector, mangler, g.cfg.SchemaOptions)

	program := typeast.NewProgram()
	for _, d := range sc.TranslateAll() {
		program.Append(typeast.NamespaceSchemas, d)
	}

	opTr := operation.NewTranslator(reg, sc, collector, mangler)
	opDecls, ops := opTr.TranslateAll(api)
	for _, d := range opDecls {
		program.Append(typeast.NamespaceOperations, d)
	}

	applyAccess(program, g.cfg.Access)

	if collector.HasErrors() {
		return &Result{RunID: runID, Diagnostics: collector.Diagnostics()},
			apierrors.WrapCodegen(fmt.Sprintf("%d error(s)", collector.Count(diag.Error)), apierrors.ErrGenerationFailed)
	}

	return &Result{RunID: runID, Program: program, Operations: ops, Diagnostics: collector.Diagnostics()}, nil
}

// applyAccess stamps every top-level declaration with the configured access
// level (§6 "access ∈ {public, package, internal, fileprivate, private}").
// Translators emit AccessPublic unconditionally since they have no
// configuration of their own; the Orchestrator is the single place that
// applies the user's choice.
func applyAccess(p *typeast.Program, access typeast.Access) {
	for _, d := range p.All() {
		switch v := d.(type) {
		case *typeast.StructDecl:
			v.Access = access
		case *typeast.SumDecl:
			v.Access = access
		case *typeast.EnumDecl:
			v.Access = access
		case *typeast.AliasDecl:
			v.Access = access
		}
	}
}
