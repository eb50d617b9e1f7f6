package component

// Input is the player's control state for the current tick.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

var InputComponent = NewComponent[Input]()
