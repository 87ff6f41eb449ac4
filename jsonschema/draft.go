// Package jsonschema infers JSON Schema documents from sample documents and
// validates documents against them.
//
// Schemas are plain *jsondoc.Document values, so they can be parsed, edited
// with paths, merged and serialized like any other document. The supported
// vocabulary is a practical subset of draft 2020-12: type, enum, const,
// properties, required, additionalProperties, min/maxProperties, items,
// min/maxItems, uniqueItems, min/maxLength, pattern, numeric bounds,
// multipleOf and format. There is no $ref resolution and no composition
// keywords; unknown keywords are ignored.
package jsonschema

import (
	"errors"
	"math"

	"github.com/reoring/jsondoc"
)

// DraftURI is written to "$schema" by Generate.
const DraftURI = "https://json-schema.org/draft/2020-12/schema"

// ErrNoSamples is returned by Generate when called without documents.
var ErrNoSamples = errors.New("jsonschema: no samples")

// Keywords
const (
	KeySchema               = "$schema"
	KeyTitle                = "title"
	KeyType                 = "type"
	KeyFormat               = "format"
	KeyEnum                 = "enum"
	KeyConst                = "const"
	KeyProperties           = "properties"
	KeyRequired             = "required"
	KeyAdditionalProperties = "additionalProperties"
	KeyMinProperties        = "minProperties"
	KeyMaxProperties        = "maxProperties"
	KeyItems                = "items"
	KeyMinItems             = "minItems"
	KeyMaxItems             = "maxItems"
	KeyUniqueItems          = "uniqueItems"
	KeyMinLength            = "minLength"
	KeyMaxLength            = "maxLength"
	KeyPattern              = "pattern"
	KeyMinimum              = "minimum"
	KeyMaximum              = "maximum"
	KeyExclusiveMinimum     = "exclusiveMinimum"
	KeyExclusiveMaximum     = "exclusiveMaximum"
	KeyMultipleOf           = "multipleOf"
)

// Type names
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
)

// TypeName maps a value kind to its JSON Schema type name.
func TypeName(k jsondoc.Kind) string {
	switch k {
	case jsondoc.KindBool:
		return TypeBoolean
	case jsondoc.KindInt:
		return TypeInteger
	case jsondoc.KindDouble:
		return TypeNumber
	case jsondoc.KindString:
		return TypeString
	case jsondoc.KindArray:
		return TypeArray
	case jsondoc.KindObject:
		return TypeObject
	default:
		return TypeNull
	}
}

// matchesType reports whether v is an instance of the named type. integer
// accepts integral doubles; number accepts both numeric kinds. Unknown
// names match nothing.
func matchesType(v *jsondoc.Value, name string) bool {
	switch name {
	case TypeNull:
		return v.Type() == jsondoc.KindNull
	case TypeBoolean:
		return v.Type() == jsondoc.KindBool
	case TypeString:
		return v.Type() == jsondoc.KindString
	case TypeArray:
		return v.Type() == jsondoc.KindArray
	case TypeObject:
		return v.Type() == jsondoc.KindObject
	case TypeNumber:
		return v.Type().IsNumber()
	case TypeInteger:
		if v.Type() == jsondoc.KindInt {
			return true
		}
		f, ok := v.AsDouble()
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}
