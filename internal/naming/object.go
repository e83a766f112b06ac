package naming

import "fmt"

// ObjectType is the kind of physical object an address belongs to.
// The set is closed: every switch over it must handle both kinds.
type ObjectType int

// Object types.
const (
	ObjectLight ObjectType = iota + 1
	ObjectGroup
)

// String returns the stable identifier of the object type.
func (t ObjectType) String() string {
	switch t {
	case ObjectLight:
		return "light"
	case ObjectGroup:
		return "group"
	default:
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
}

// MarshalText encodes the object type as "light" or "group".
func (t ObjectType) MarshalText() ([]byte, error) {
	switch t {
	case ObjectLight, ObjectGroup:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("naming: cannot marshal %s", t)
	}
}

// UnmarshalText decodes "light" or "group".
func (t *ObjectType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "light":
		*t = ObjectLight
	case "group":
		*t = ObjectGroup
	default:
		return fmt.Errorf("naming: unknown object type %q", text)
	}
	return nil
}

// Identity is the convention-derived identity of one address.
type Identity struct {
	ModuleInMain int        `json:"module_in_main"`
	ModuleGlobal int        `json:"module_global"`
	Type         ObjectType `json:"object_kind"`
	ObjectNo     int        `json:"object_no"`
}

// objectKey identifies one physical object across all its functions.
type objectKey struct {
	typ ObjectType
	no  int
}

func (id Identity) key() objectKey {
	return objectKey{typ: id.Type, no: id.ObjectNo}
}
