package routing

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// knownParamTypes are the type constraints accepted in patterns.
var knownParamTypes = map[string]bool{
	"string": true,
	"int":    true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uuid": true,
}

// IsParamType reports whether typ is a supported parameter type.
func IsParamType(typ string) bool {
	return typ == "" || knownParamTypes[typ]
}

// ValidateParam validates a parameter value against its type.
// Unknown types accept any value.
func ValidateParam(value, paramType string) error {
	switch paramType {
	case "int", "int64", "int32", "int16", "int8":
		bits := intBits(paramType)
		if _, err := strconv.ParseInt(value, 10, bits); err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
	case "uint", "uint64", "uint32", "uint16", "uint8":
		bits := intBits(paramType)
		if _, err := strconv.ParseUint(value, 10, bits); err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
	case "uuid":
		// Only the canonical 8-4-4-4-12 form appears in URLs.
		if len(value) != 36 || uuid.Validate(value) != nil {
			return fmt.Errorf("invalid UUID: %s", value)
		}
	}
	return nil
}

func intBits(typ string) int {
	switch typ {
	case "int8", "uint8":
		return 8
	case "int16", "uint16":
		return 16
	case "int32", "uint32":
		return 32
	default:
		return 64
	}
}
