package models

import "strings"

const ReferenceType = "reference"

// Reference is an entry of a reference array, or a single reference field
// when Key is empty.
type Reference struct {
	Key  string `json:"_key,omitempty"`
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

// SanitizeKey strips every character outside [A-Za-z0-9].
func SanitizeKey(id string) string {
	var sb strings.Builder
	sb.Grow(len(id))
	for _, ch := range id {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func ArrayKey(prefix, id string) string {
	return prefix + SanitizeKey(id)
}

func NewReference(id string) Reference {
	return Reference{Type: ReferenceType, Ref: id}
}

func NewArrayReference(prefix, id string) Reference {
	return Reference{Key: ArrayKey(prefix, id), Type: ReferenceType, Ref: id}
}
