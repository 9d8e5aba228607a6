package models

import "errors"

// EntityID identifies a world object (a car, a rail segment, a start gate).
type EntityID uint64

var (
	ErrEntityExists   = errors.New("entity already exists")
	ErrEntityNotFound = errors.New("entity not found")
	ErrInvalidEntity  = errors.New("invalid entity")
)

// Entity is a tagged world object. The tag is the only attribute gameplay
// logic inspects; geometry and physics state belong to the host engine.
type Entity struct {
	id  EntityID
	tag string
}

// NewEntity creates an entity with the given id and tag. An empty tag is allowed
// and means the object carries no label.
func NewEntity(id EntityID, tag string) Entity {
	return Entity{id: id, tag: tag}
}

func (e Entity) ID() EntityID { return e.id }
func (e Entity) Tag() string  { return e.tag }

// WithTag returns a copy of the entity carrying a different tag.
func (e Entity) WithTag(tag string) Entity {
	e.tag = tag
	return e
}
