package typeast

// OperationDecl is the Operations-namespace node for one OpenAPI operation
// (§3 "Operations namespace", §4.5). It is not itself a Decl in the
// Program sense — it's assembled from Decls already appended to the
// Operations namespace (its Input/Output struct and sum) plus the
// serializer/deserializer blocks that reference them.
type OperationDecl struct {
	Name        string // mangled from operationId
	Doc         string
	Method      string
	PathPattern string // positional placeholders, e.g. "/foo/{}"

	Input  *StructDecl // groups: Path, Query, Headers, Cookies, Body
	Output *SumDecl    // one variant per documented status + undocumented

	ClientSerialize     Block // builds outbound request from Input
	ServerDeserialize    Block // extracts Input from inbound request
	ServerSerialize      Block // writes Output to outbound response
	ClientDeserialize    Block // extracts Output from inbound response
}

func (*OperationDecl) isDecl()            {}
func (d *OperationDecl) DeclName() string { return d.Name }

// Block is a flat sequence of statements — deliberately shallow, since the
// actual control flow (loops, branches on content-type/status) is expressed
// through a small number of composite Stmt kinds rather than a full
// expression language. The external renderer owns turning this into real
// target-language control flow; Block only needs to preserve order and the
// data each step touches.
type Block []Stmt

// Stmt is one step of a serializer/deserializer block.
type Stmt struct {
	Kind StmtKind

	// SetPathPlaceholder / SetQueryItem / SetHeaderItem / SetCookieItem
	Field   string // source field on the envelope
	Style   string
	Explode bool

	// EncodeBody / DecodeBody
	ContentType string

	// Switch (content negotiation, status dispatch)
	Cases []Case

	// Call is a generic escape hatch for glue the AST doesn't model
	// explicitly (e.g. "apply middleware chain"); Name documents what it
	// invokes, Args are field names it threads through.
	Name string
	Args []string
}

// StmtKind enumerates the statement shapes an operation block is built
// from.
type StmtKind string

const (
	StmtSetPathPlaceholder StmtKind = "set-path-placeholder"
	StmtSetQueryItem       StmtKind = "set-query-item"
	StmtSetHeaderItem      StmtKind = "set-header-item"
	StmtSetCookieItem      StmtKind = "set-cookie-item"
	StmtGetPathPlaceholder StmtKind = "get-path-placeholder"
	StmtGetQueryItem       StmtKind = "get-query-item"
	StmtGetHeaderItem      StmtKind = "get-header-item"
	StmtGetCookieItem      StmtKind = "get-cookie-item"
	StmtEncodeBody         StmtKind = "encode-body"
	StmtDecodeBody         StmtKind = "decode-body"
	StmtSwitchContentType  StmtKind = "switch-content-type"
	StmtSwitchStatus       StmtKind = "switch-status"
	StmtSetAcceptHeader    StmtKind = "set-accept-header"
	StmtCall               StmtKind = "call"
)

// Case is one arm of a Switch statement.
type Case struct {
	// Match is the content-type label or status code this arm handles; ""
	// marks the default/undocumented arm.
	Match string
	Body  Block
}
