package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Role says where an element sits in the mission tree.
type Role string

const (
	RolePrimary    Role = "primary"
	RoleAdditional Role = "additional"
	RoleNested     Role = "nested"
)

const nestedSep = "-nested-"

// ElementID is the stable identifier clients use to target redraw and nested
// draw actions. Build one with PrimaryID, AdditionalID or NestedID.
type ElementID struct {
	Role        Role
	Element     Element
	Requirement int
	Card        int
	// Parent is set for nested elements only.
	Parent *ElementID
}

func PrimaryID(e Element) ElementID {
	return ElementID{Role: RolePrimary, Element: e}
}

func AdditionalID(e Element, requirement, card int) ElementID {
	return ElementID{Role: RoleAdditional, Element: e, Requirement: requirement, Card: card}
}

func NestedID(parent ElementID, index int) ElementID {
	p := parent
	return ElementID{Role: RoleNested, Element: parent.Element, Card: index, Parent: &p}
}

// String renders the opaque form, e.g. "primary-location",
// "additional-object-0-1" or "additional-object-0-1-nested-0".
func (id ElementID) String() string {
	switch id.Role {
	case RolePrimary:
		return "primary-" + string(id.Element)
	case RoleAdditional:
		return fmt.Sprintf("additional-%s-%d-%d", id.Element, id.Requirement, id.Card)
	case RoleNested:
		parent := ""
		if id.Parent != nil {
			parent = id.Parent.String()
		}
		return parent + nestedSep + strconv.Itoa(id.Card)
	}
	return ""
}

func (id ElementID) IsZero() bool {
	return id.Role == ""
}

// Equal compares identifiers by their rendered form.
func (id ElementID) Equal(other ElementID) bool {
	return id.String() == other.String()
}

func (id ElementID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ElementID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = ElementID{}
		return nil
	}
	parsed, err := ParseElementID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseElementID is the inverse of ElementID.String.
func ParseElementID(s string) (ElementID, error) {
	if i := strings.LastIndex(s, nestedSep); i >= 0 {
		parent, err := ParseElementID(s[:i])
		if err != nil {
			return ElementID{}, err
		}
		n, err := strconv.Atoi(s[i+len(nestedSep):])
		if err != nil || n < 0 {
			return ElementID{}, fmt.Errorf("%w: %q", ErrUnknownElement, s)
		}
		return NestedID(parent, n), nil
	}

	parts := strings.Split(s, "-")
	switch {
	case len(parts) == 2 && parts[0] == string(RolePrimary):
		e := Element(parts[1])
		if !e.Valid() {
			break
		}
		return PrimaryID(e), nil
	case len(parts) == 4 && parts[0] == string(RoleAdditional):
		e := Element(parts[1])
		req, err1 := strconv.Atoi(parts[2])
		card, err2 := strconv.Atoi(parts[3])
		if !e.Valid() || err1 != nil || err2 != nil || req < 0 || card < 0 {
			break
		}
		return AdditionalID(e, req, card), nil
	}
	return ElementID{}, fmt.Errorf("%w: %q", ErrUnknownElement, s)
}
