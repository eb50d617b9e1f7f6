package component

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     int
	Current int
	Dead    bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount from Current, never going below zero. died is
// true only for the application that killed the entity; damage to a dead
// entity is ignored.
func (h *Health) ApplyDamage(amount int) (applied, died bool) {
	if h == nil || h.Dead || amount <= 0 {
		return false, false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current == 0 {
		h.Dead = true
		return true, true
	}
	return true, false
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

var HealthComponent = NewComponent[Health]()
