package behavior

import (
	"log"

	"github.com/milk9111/striker/common"
)

// Movement and attack type tags accepted in prefab files.
const (
	TagNone             = "none"
	TagStraight         = "straight"
	TagZigzag           = "zigzag"
	TagTargetSeeking    = "target_seeking"
	TagHover            = "hover"
	TagSingleShotPlayer = "single_shot_player"
	TagSingleShotDown   = "single_shot_down"
	TagSpreadShot       = "spread_shot"
	TagCircularShot     = "circular_shot"
	TagBurstFire        = "burst_fire"
)

const (
	defaultCooldown     = 1.0
	defaultBulletDamage = 15
)

// ScriptLoader resolves an admission script name to its source.
type ScriptLoader func(name string) ([]byte, error)

// Factory builds movement and attack strategies from configuration. Bad
// configuration never fails construction: unknown tags yield the neutral
// strategy and bad params yield the tag defaults.
type Factory struct {
	loadScript ScriptLoader
	compiled   map[string]*Admission
}

func NewFactory(loadScript ScriptLoader) *Factory {
	return &Factory{
		loadScript: loadScript,
		compiled:   make(map[string]*Admission),
	}
}

// NewMovement builds a movement strategy.
func (f *Factory) NewMovement(cfg Config) Movement {
	switch cfg.Tag() {
	case TagStraight:
		return Movement{Kind: MoveStraight, Speed: cfg.Float("speed", 100)}
	case TagZigzag:
		return Movement{
			Kind:            MoveZigzag,
			Speed:           cfg.Float("speed", 80),
			HorizontalSpeed: cfg.Float("horizontal_speed", 120),
			BoundLeft:       0,
			BoundRight:      cfg.Float("bound_width", common.ScreenWidth),
			sign:            1,
		}
	case TagTargetSeeking:
		return Movement{
			Kind:     MoveTargetSeeking,
			Speed:    cfg.Float("speed", 120),
			TurnRate: cfg.Float("turn_rate", 2.0),
		}
	case TagHover:
		return Movement{
			Kind:            MoveHover,
			Speed:           cfg.Float("speed", 60),
			HoverY:          cfg.Float("hover_y", 120),
			HorizontalSpeed: cfg.Float("horizontal_speed", 100),
			BoundLeft:       0,
			BoundRight:      cfg.Float("bound_width", common.ScreenWidth),
			sign:            1,
		}
	case TagNone:
		return Movement{Kind: MoveNone}
	default:
		log.Printf("behavior: unknown movement type %q, entity will not move", cfg.Type)
		return Movement{Kind: MoveNone}
	}
}

// NewAttack builds an attack strategy that writes its shots into sink.
func (f *Factory) NewAttack(cfg Config, sink ProjectileSink) Attack {
	a := Attack{
		Cooldown: nonNegative(cfg.Float("cooldown", defaultCooldown), defaultCooldown),
		Damage:   cfg.Int("damage", defaultBulletDamage),
		sink:     sink,
	}

	switch cfg.Tag() {
	case TagSingleShotPlayer:
		a.Kind = AttackSingleShotTarget
		a.BulletSpeed = cfg.Float("bullet_speed", 300)
	case TagSingleShotDown:
		a.Kind = AttackSingleShotDown
		a.BulletSpeed = cfg.Float("bullet_speed", 300)
	case TagSpreadShot:
		a.Kind = AttackSpread
		a.BulletSpeed = cfg.Float("bullet_speed", 300)
		a.Count = positive(cfg.Int("bullet_count", 3), 3)
		a.HalfAngle = cfg.Float("spread_angle", 15)
		a.VisualKey = cfg.String("image_key", "")
		if cfg.String("target_mode", "target") == "fixed" {
			a.TargetMode = TargetFixed
		}
	case TagCircularShot:
		a.Kind = AttackCircular
		a.BulletSpeed = cfg.Float("bullet_speed", 250)
		a.Count = positive(cfg.Int("bullet_count", 8), 8)
	case TagBurstFire:
		a.Kind = AttackBurst
		a.BulletSpeed = cfg.Float("bullet_speed", 350)
		a.BurstCount = positive(cfg.Int("burst_count", 3), 3)
		a.BurstDelay = nonNegative(cfg.Float("burst_delay", 0.1), 0.1)
	case TagNone, "":
		return Attack{Kind: AttackNone}
	default:
		log.Printf("behavior: unknown attack type %q, entity will not attack", cfg.Type)
		return Attack{Kind: AttackNone}
	}

	a.admission = f.admission(cfg)
	return a
}

func (f *Factory) admission(cfg Config) *Admission {
	var src string
	if expr := cfg.String("admit", ""); expr != "" {
		src = ExpressionSource(expr)
	} else if name := cfg.String("admit_script", ""); name != "" {
		if f.loadScript == nil {
			log.Printf("behavior: admission script %q ignored, no script loader", name)
			return nil
		}
		data, err := f.loadScript(name)
		if err != nil {
			log.Printf("behavior: load admission script %q: %v", name, err)
			return nil
		}
		src = string(data)
	} else {
		return nil
	}

	if adm, ok := f.compiled[src]; ok {
		if adm == nil {
			return nil
		}
		return adm.Clone()
	}
	adm, err := CompileAdmission(src)
	if err != nil {
		log.Printf("%v; attack will always fire", err)
		f.compiled[src] = nil
		return nil
	}
	f.compiled[src] = adm
	return adm.Clone()
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func nonNegative(v, def float64) float64 {
	if v < 0 {
		return def
	}
	return v
}
