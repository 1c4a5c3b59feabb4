package domain

import "fmt"

// DataType is the closed set of logical field types. Generation and validation
// dispatch on it with exhaustive switches so adding a type breaks compilation
// everywhere a branch is missing.
type DataType string

const (
	TypeString   DataType = "string"
	TypeInteger  DataType = "integer"
	TypeFloat    DataType = "float"
	TypeBoolean  DataType = "boolean"
	TypeDate     DataType = "date"
	TypeDateTime DataType = "datetime"
	TypeEmail    DataType = "email"
	TypePhone    DataType = "phone"
	TypeURL      DataType = "url"
	TypeUUID     DataType = "uuid"
	TypeJSON     DataType = "json"
)

// DataTypes returns every valid DataType in declaration order.
func DataTypes() []DataType {
	return []DataType{
		TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeDate,
		TypeDateTime, TypeEmail, TypePhone, TypeURL, TypeUUID, TypeJSON,
	}
}

func ParseDataType(s string) (DataType, error) {
	switch dt := DataType(s); dt {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeDate,
		TypeDateTime, TypeEmail, TypePhone, TypeURL, TypeUUID, TypeJSON:
		return dt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataType, s)
}

// Valid reports whether t is a member of the closed type set.
func (t DataType) Valid() bool {
	_, err := ParseDataType(string(t))
	return err == nil
}

// StringLike reports whether values of this type are carried as strings, which
// makes length constraints applicable.
func (t DataType) StringLike() bool {
	switch t {
	case TypeString, TypeDate, TypeDateTime, TypeEmail, TypePhone, TypeURL, TypeUUID:
		return true
	}
	return false
}

// Numeric reports whether range constraints apply to this type.
func (t DataType) Numeric() bool {
	return t == TypeInteger || t == TypeFloat
}
