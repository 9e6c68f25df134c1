package component

// Movement moves an entity by its Input at Speed pixels per second.
type Movement struct {
	Speed float64
	Clamp bool
}

var MovementComponent = NewComponent[Movement]()
