// Package typeast defines the language-neutral AST the translators emit and
// an external renderer would walk to produce target-language source. It
// stops at structured declarations/expressions/statements — pretty-printing
// is explicitly out of scope (see spec.md §1).
package typeast

// Access is the visibility level applied to every top-level declaration,
// mirroring the generator's `access` config option (§6).
type Access string

const (
	AccessPublic      Access = "public"
	AccessPackage     Access = "package"
	AccessInternal    Access = "internal"
	AccessFilePrivate Access = "fileprivate"
	AccessPrivate     Access = "private"
)

// Namespace is one of the five shared component namespaces plus the
// generated Operations namespace (§3 "Emitted type catalog").
type Namespace string

const (
	NamespaceSchemas       Namespace = "Schemas"
	NamespaceParameters    Namespace = "Parameters"
	NamespaceHeaders       Namespace = "Headers"
	NamespaceResponses     Namespace = "Responses"
	NamespaceRequestBodies Namespace = "RequestBodies"
	NamespaceOperations    Namespace = "Operations"
)

// Program is the complete output of one generation mode: every declaration,
// grouped by namespace, the order within a namespace being the order
// declarations were appended (translation order, which is itself
// deterministic — see Determinism, §8).
type Program struct {
	Namespaces map[Namespace][]Decl
}

// NewProgram returns an empty Program ready for Append.
func NewProgram() *Program {
	return &Program{Namespaces: make(map[Namespace][]Decl)}
}

// Append adds decl to ns, preserving call order.
func (p *Program) Append(ns Namespace, decl Decl) {
	p.Namespaces[ns] = append(p.Namespaces[ns], decl)
}

// All returns every declaration across every namespace, namespace by
// namespace in the fixed order above, for callers (renderers, uniqueness
// checks) that don't care about grouping.
func (p *Program) All() []Decl {
	order := []Namespace{
		NamespaceSchemas, NamespaceParameters, NamespaceHeaders,
		NamespaceResponses, NamespaceRequestBodies, NamespaceOperations,
	}
	var all []Decl
	for _, ns := range order {
		all = append(all, p.Namespaces[ns]...)
	}
	return all
}

// Decl is any top-level declaration. The concrete types are StructDecl,
// SumDecl, EnumDecl, and AliasDecl.
type Decl interface {
	DeclName() string
	isDecl()
}

// StructDecl is a product type: one field per OpenAPI property, or per allOf
// child, or per anyOf child (§4.2).
type StructDecl struct {
	Name   string
	Doc    string
	Access Access
	Fields []Field

	// Boxed marks a struct on a recursion back-edge (§4.2 "Recursion
	// handling"): its fields are stored behind heap indirection and every
	// accessor forwards to that storage. Boxed is an implementation detail
	// from the consumer's point of view — the field set is unchanged.
	Boxed bool

	// AdditionalProperties is set when the object schema declares
	// `additionalProperties` as `true` or a schema (§4.2's translation
	// table); its Type is either a universal value container (true) or
	// Map(string, T) (schema).
	AdditionalProperties *Field

	// ClosedNoUnknownKeys marks `additionalProperties: false`: the decoder
	// must assert that no keys remain beyond the declared properties.
	ClosedNoUnknownKeys bool
}

func (*StructDecl) isDecl()            {}
func (d *StructDecl) DeclName() string { return d.Name }

// Field is one member of a StructDecl.
type Field struct {
	Name string
	// WireName is the original OpenAPI property/parameter name before
	// mangling, used by the decoder/encoder to address the wire
	// representation.
	WireName string
	Doc      string
	Type     TypeRef

	// Optional mirrors §4.2 "A property is optional iff its name is absent
	// from the enclosing object's required set." Optional fields get an
	// initializer default (usually None).
	Optional bool

	// Nullable mirrors the schema's own null-ness, independent of Optional.
	// Optional||Nullable ⇒ the emitted Type is wrapped in Option (done by
	// the caller before populating Type); Nullable alone still yields
	// Option<T> per §4.2 but with no initializer default, since the field
	// is still required on the wire.
	Nullable bool

	// Default, when non-nil, is the literal the schema's `default` value
	// translates to; only meaningful when Optional is true.
	Default *Literal

	Deprecated bool
}

// SumDecl is a closed tagged union: one variant per oneOf child, or
// per multipart part, or per content-type, or per response status (§3, §4.2,
// §4.3, §4.5).
type SumDecl struct {
	Name   string
	Doc    string
	Access Access

	Variants []Variant

	// Discriminator is set for oneOf-with-discriminator sums (§4.2); nil
	// means decode-by-trying-each-in-order (oneOf without discriminator) or
	// decode-by-content-type (content/response sums), which the owning
	// translator distinguishes via DecodeStrategy.
	Discriminator *DiscriminatorInfo

	Strategy DecodeStrategy
}

func (*SumDecl) isDecl()            {}
func (d *SumDecl) DeclName() string { return d.Name }

// DecodeStrategy names how a SumDecl's decoder picks a variant.
type DecodeStrategy string

const (
	// StrategyDiscriminator reads the discriminator property and matches
	// it against each variant's DiscriminatorValue (§4.2 oneOf+discriminator).
	StrategyDiscriminator DecodeStrategy = "discriminator"
	// StrategyFirstMatch tries each variant's decoder in declaration order
	// and takes the first success (§4.2 oneOf without discriminator).
	StrategyFirstMatch DecodeStrategy = "first-match"
	// StrategyAllIndependent tries every variant independently and
	// accumulates successes (§4.2 anyOf).
	StrategyAllIndependent DecodeStrategy = "all-independent"
	// StrategyContentType picks the variant whose declared media type
	// matches the request/response Content-Type (§4.3, §4.5).
	StrategyContentType DecodeStrategy = "content-type"
	// StrategyStatusCode picks the variant whose declared status matches
	// the response status code, falling through to `undocumented` (§4.5).
	StrategyStatusCode DecodeStrategy = "status-code"
	// StrategyMultipartPart picks the variant whose part name matches the
	// incoming multipart section name, falling through to `undocumented` or
	// an `additionalProperties`-typed variant (§4.3.1).
	StrategyMultipartPart DecodeStrategy = "multipart-part"
)

// DiscriminatorInfo carries the discriminator property name for a SumDecl
// using StrategyDiscriminator.
type DiscriminatorInfo struct {
	PropertyName string
}

// Variant is one arm of a SumDecl.
type Variant struct {
	Name string
	Doc  string

	// DiscriminatorValue is the literal that selects this variant, set only
	// when the owning SumDecl.Strategy is StrategyDiscriminator. Each
	// mapping entry gets its own variant, so "a" and "a2" mapping to the same
	// schema yield two variants. AdditionalDiscriminatorValues holds the
	// full `#/components/schemas/<name>` reference for a oneOf child that
	// no mapping entry covers.
	DiscriminatorValue            string
	AdditionalDiscriminatorValues []string

	// StatusCode is set when the owning SumDecl.Strategy is
	// StrategyStatusCode; "" for the catch-all undocumented variant.
	StatusCode string

	// MediaType is set when the owning SumDecl.Strategy is
	// StrategyContentType.
	MediaType string

	// Payload is nil for a variant with no associated data (rare — e.g. a
	// 204 No Content response variant).
	Payload *TypeRef

	// Indirect marks a variant whose payload sits on a recursion back-edge
	// (§4.2): it does not contribute to the enclosing sum's inline size.
	Indirect bool

	// Undocumented marks the catch-all variant carrying (status, raw
	// payload) appended to every Output sum (§4.5), or the catch-all
	// multipart part variant (§4.3.1).
	Undocumented bool

	// Multiplicity classifies a multipart part's required/array combination
	// (§4.3.1); zero value for non-multipart variants.
	Multiplicity Multiplicity

	// Headers is the per-part header sub-struct derived from
	// `encoding.<prop>.headers` (§4.3.1); nil when the part declares none.
	Headers *TypeRef
}

// Multiplicity classifies a multipart part by whether its property is
// required and whether its schema is an array (§4.3.1).
type Multiplicity string

const (
	MultiplicityRequiredOnce       Multiplicity = "required-exactly-once"
	MultiplicityRequiredAtLeastOnce Multiplicity = "required-at-least-once"
	MultiplicityAtMostOnce         Multiplicity = "at-most-once"
	MultiplicityZeroOrMore         Multiplicity = "zero-or-more"
)

// EnumDecl is a closed sum over a primitive's literal values (§4.2
// "string + enum").
type EnumDecl struct {
	Name    string
	Doc     string
	Access  Access
	Base    PrimitiveKind
	Members []EnumMember
}

func (*EnumDecl) isDecl()            {}
func (d *EnumDecl) DeclName() string { return d.Name }

// EnumMember is one allowed literal value, paired with its mangled case name.
type EnumMember struct {
	Name    string
	Literal string
}

// AliasDecl is a typealias to another type: primitives, formatted strings,
// arrays, and the empty-fragment universal container (§4.2).
type AliasDecl struct {
	Name   string
	Doc    string
	Access Access
	Target TypeRef
}

func (*AliasDecl) isDecl()            {}
func (d *AliasDecl) DeclName() string { return d.Name }

// PrimitiveKind enumerates the target-language primitive shapes a schema can
// bottom out at.
type PrimitiveKind string

const (
	PrimString    PrimitiveKind = "string"
	PrimInt       PrimitiveKind = "int"
	PrimInt64     PrimitiveKind = "int64"
	PrimFloat64   PrimitiveKind = "float64"
	PrimBool      PrimitiveKind = "bool"
	PrimDateTime  PrimitiveKind = "date-time"
	PrimBase64    PrimitiveKind = "base64-bytes"
	PrimByteBlob  PrimitiveKind = "binary-stream"
	PrimAnyValue  PrimitiveKind = "any-value" // universal value container (§4.2 "{}")
	PrimJSONValue PrimitiveKind = "json-object"
)

// RefKind distinguishes the shape of a TypeRef.
type RefKind int

const (
	RefPrimitive RefKind = iota
	RefNamed             // reference to another declaration by name
	RefOption            // Option<Elem>
	RefArray             // ordered sequence of Elem
	RefMap               // Map<Key, Value> (only Key==string is used, per §4.2)
	RefBox               // heap-indirect storage wrapping Elem (recursion breaking)
)

// TypeRef names the type of a field, variant payload, or alias target.
type TypeRef struct {
	Kind      RefKind
	Primitive PrimitiveKind
	Name      string // RefNamed
	Elem      *TypeRef
	Key       *TypeRef
	Value     *TypeRef
}

func Prim(k PrimitiveKind) TypeRef        { return TypeRef{Kind: RefPrimitive, Primitive: k} }
func Named(name string) TypeRef          { return TypeRef{Kind: RefNamed, Name: name} }
func Option(elem TypeRef) TypeRef        { return TypeRef{Kind: RefOption, Elem: &elem} }
func Array(elem TypeRef) TypeRef         { return TypeRef{Kind: RefArray, Elem: &elem} }
func MapOf(key, value TypeRef) TypeRef   { return TypeRef{Kind: RefMap, Key: &key, Value: &value} }
func Box(elem TypeRef) TypeRef           { return TypeRef{Kind: RefBox, Elem: &elem} }

// IsOption reports whether t is already an Option wrapper, so translators
// can avoid double-wrapping (Option<Option<T>> is never emitted).
func (t TypeRef) IsOption() bool { return t.Kind == RefOption }

// Literal is a constant value usable as a field default.
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

// LiteralKind distinguishes the payload field of Literal that is valid.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull
)
