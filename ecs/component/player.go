package component

import "github.com/jakecoffman/cp"

const MaxWeaponLevel = 5

// Player is the controllable ship. All damage to it goes through TakeDamage.
type Player struct {
	Speed        float64
	ShootDelay   float64
	BulletSpeed  float64
	BulletDamage int

	Health    int
	MaxHealth int
	Lives     int
	MaxLives  int
	Dead      bool

	// Invuln is the remaining invulnerability time in seconds.
	Invuln         float64
	InvulnDuration float64

	WeaponLevel int
	ShotTimer   float64
	SpawnPos    cp.Vector
}

// PlayerHit is the outcome of one TakeDamage call.
type PlayerHit struct {
	Applied  bool
	LifeLost bool
	Died     bool
}

func (p *Player) Invulnerable() bool {
	return p != nil && p.Invuln > 0
}

// TakeDamage applies amount unless the player is invulnerable or dead. Any
// applied hit starts the invulnerability window. Reaching zero health costs a
// life; the player comes back at full health while lives remain.
func (p *Player) TakeDamage(amount int) PlayerHit {
	if p == nil || p.Dead || p.Invuln > 0 || amount <= 0 {
		return PlayerHit{}
	}
	p.Health -= amount
	p.Invuln = p.InvulnDuration
	if p.Health > 0 {
		return PlayerHit{Applied: true}
	}

	p.Health = 0
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Dead = true
		return PlayerHit{Applied: true, LifeLost: true, Died: true}
	}
	p.Health = p.MaxHealth
	return PlayerHit{Applied: true, LifeLost: true}
}

// Tick counts down the invulnerability and shot timers.
func (p *Player) Tick(dt float64) {
	if p == nil {
		return
	}
	if p.Invuln > 0 {
		p.Invuln -= dt
		if p.Invuln < 0 {
			p.Invuln = 0
		}
	}
	if p.ShotTimer > 0 {
		p.ShotTimer -= dt
		if p.ShotTimer < 0 {
			p.ShotTimer = 0
		}
	}
}

func (p *Player) UpgradeWeapon() {
	if p.WeaponLevel < MaxWeaponLevel {
		p.WeaponLevel++
	}
}

func (p *Player) RestoreHealth(amount int) {
	if p.Dead {
		return
	}
	p.Health = min(p.MaxHealth, p.Health+amount)
}

func (p *Player) AddLife() {
	if p.Lives < p.MaxLives {
		p.Lives++
	}
}

var PlayerComponent = NewComponent[Player]()
