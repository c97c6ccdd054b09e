package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E2xxx: Compile errors, raised while transpiling a unit
//   - E3xxx: Runtime errors, raised by generated code and the runtime
type ErrorCode string

const (
	// Compile errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unsupported node kind
	E2002 ErrorCode = "E2002" // Template synthesis failed
	E2003 ErrorCode = "E2003" // Illegal access chain
	E2004 ErrorCode = "E2004" // Mixed positional and named arguments

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Type cast failed
	E3002 ErrorCode = "E3002" // Missing required argument
	E3003 ErrorCode = "E3003" // Immutable value modified
	E3004 ErrorCode = "E3004" // Undefined variable
	E3005 ErrorCode = "E3005" // Not callable
	E3006 ErrorCode = "E3006" // Division by zero
	E3007 ErrorCode = "E3007" // Invalid operation
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E2001: "unsupported node kind",
	E2002: "template synthesis failed",
	E2003: "illegal access chain",
	E2004: "mixed positional and named arguments",

	E3001: "type cast failed",
	E3002: "missing required argument",
	E3003: "immutable value modified",
	E3004: "undefined variable",
	E3005: "not callable",
	E3006: "division by zero",
	E3007: "invalid operation",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '2':
		return "compile"
	case '3':
		return "runtime"
	default:
		return "unknown"
	}
}
