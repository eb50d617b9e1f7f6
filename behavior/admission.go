package behavior

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
)

// admissionVars are the globals a predicate can read. Every script must
// assign the boolean global "admit".
var admissionVars = []string{"distance", "dx", "dy", "age", "self_x", "self_y", "target_x", "target_y"}

// Admission is a compiled tengo predicate gating an attack trigger.
type Admission struct {
	source   string
	compiled *tengo.Compiled
	failed   bool
}

// ExpressionSource wraps a one-line boolean expression into a script that
// assigns admit.
func ExpressionSource(expr string) string {
	return fmt.Sprintf("admit := (%s)", strings.TrimSpace(expr))
}

// CompileAdmission compiles a predicate script.
func CompileAdmission(src string) (*Admission, error) {
	script := tengo.NewScript([]byte(src))
	for _, name := range admissionVars {
		_ = script.Add(name, 0.0)
	}
	_ = script.Add("has_target", false)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile admission: %w", err)
	}
	return &Admission{source: src, compiled: compiled}, nil
}

// Clone returns an independent copy with its own globals.
func (a *Admission) Clone() *Admission {
	if a == nil {
		return nil
	}
	return &Admission{source: a.source, compiled: a.compiled.Clone()}
}

// Admit evaluates the predicate. A script that fails at runtime admits, and
// the failure is logged once.
func (a *Admission) Admit(self Body, target *cp.Vector) bool {
	if a == nil || a.compiled == nil || a.failed {
		return true
	}

	var tx, ty, dx, dy, dist float64
	hasTarget := target != nil
	if hasTarget {
		tx, ty = target.X, target.Y
		dx, dy = tx-self.Pos.X, ty-self.Pos.Y
		dist = self.Pos.Distance(*target)
	}

	values := map[string]any{
		"distance": dist,
		"dx":       dx,
		"dy":       dy,
		"age":      self.Age,
		"self_x":   self.Pos.X,
		"self_y":   self.Pos.Y,
		"target_x": tx,
		"target_y": ty,
	}
	for name, v := range values {
		if err := a.compiled.Set(name, v); err != nil {
			return a.fail(err)
		}
	}
	if err := a.compiled.Set("has_target", hasTarget); err != nil {
		return a.fail(err)
	}
	if err := a.compiled.Run(); err != nil {
		return a.fail(err)
	}
	if !a.compiled.IsDefined("admit") {
		return a.fail(fmt.Errorf("script does not define admit"))
	}
	return a.compiled.Get("admit").Bool()
}

func (a *Admission) fail(err error) bool {
	a.failed = true
	log.Printf("behavior: admission predicate disabled: %v", err)
	return true
}
