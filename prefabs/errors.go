package prefabs

import "errors"

var ErrNothingToWatch = errors.New("prefabs: no watchable directory")
