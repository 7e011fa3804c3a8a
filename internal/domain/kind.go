package domain

// Kind is the closed set of descriptor kinds a fragment can classify as.
type Kind int

const (
	KindAny Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindEnum
	KindSomeOf
	KindInstance
	KindGeneric
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindObject:   "object",
	KindArray:    "array",
	KindString:   "string",
	KindNumber:   "number",
	KindBoolean:  "boolean",
	KindNull:     "null",
	KindEnum:     "enum",
	KindSomeOf:   "some-of",
	KindInstance: "instance",
	KindGeneric:  "generic",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
