package entrypoint

// Role says which part of an operation an entry point describes.
type Role string

const (
	RoleParameters Role = "parameters"
	RoleRequest    Role = "request"
	RoleRequests   Role = "requests"
	RoleResponse   Role = "response"
	RoleResponses  Role = "responses"
)

// Entry is one named virtual fragment synthesized from an operation.
type Entry struct {
	// Name is the model name requested for the entry
	Name string

	// Ref is the canonical reference the fragment is mounted at
	Ref string

	// Operation is the METHOD and path the entry belongs to, e.g. "GET /widgets/{id}"
	Operation string

	// Role of the entry within its operation
	Role Role

	// Status code for response entries
	Status string

	// ContentType for request and response entries with a body
	ContentType string

	// Fragment is the raw schema fragment
	Fragment map[string]any
}

// Operation is the subset of an API operation the synthesizer reads.
type Operation struct {
	// HTTP method (GET, POST, PUT, DELETE, etc.)
	Method string

	// URL path (e.g., "/users/{id}")
	Path string

	// Name is the PascalCase operation name entry names start with
	Name string

	// Pointer locates the operation object in the document
	Pointer string

	// Deprecated marks every entry of the operation deprecated
	Deprecated bool
}

// String returns "METHOD /path".
func (o Operation) String() string {
	return o.Method + " " + o.Path
}
