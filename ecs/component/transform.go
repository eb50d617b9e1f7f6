package component

import "github.com/jakecoffman/cp"

// Transform is the continuous position of an entity's center.
type Transform struct {
	Pos cp.Vector
}

var TransformComponent = NewComponent[Transform]()
