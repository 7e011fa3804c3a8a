// Package domain holds the types shared by every stage of a conversion run:
// schema type names, canonical references and the error taxonomy.
package domain

const (
	// ARRAY represent a array value.
	ARRAY = "array"
	// OBJECT represent a object value.
	OBJECT = "object"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// NUMBER represent a number value.
	NUMBER = "number"
	// STRING represent a string value.
	STRING = "string"
	// NULL represent a null value.
	NULL = "null"
)

// IsPrimitiveType determines whether the type name is a JSON Schema primitive type.
func IsPrimitiveType(typeName string) bool {
	switch typeName {
	case STRING, NUMBER, INTEGER, BOOLEAN, ARRAY, OBJECT, NULL:
		return true
	}
	return false
}

// IsScalarType determines whether the type name is a leaf value type.
func IsScalarType(typeName string) bool {
	switch typeName {
	case STRING, NUMBER, INTEGER, BOOLEAN, NULL:
		return true
	}
	return false
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// NoOpDebugger returns a Debugger that discards everything.
func NoOpDebugger() Debugger {
	return noOpDebugger{}
}
