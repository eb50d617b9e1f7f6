package prefabs

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/striker/behavior"
	"gopkg.in/yaml.v3"
)

// Prefab file names.
const (
	EnemiesFile = "enemies.yaml"
	WavesFile   = "waves.yaml"
	PlayerFile  = "player.yaml"
)

// BasicCategory is the built-in category used when neither the requested
// nor the default category is usable.
const BasicCategory = "basic"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EnemySpec configures one hostile category.
type EnemySpec struct {
	Health   int             `yaml:"health"`
	Score    int             `yaml:"score"`
	AssetKey string          `yaml:"asset_key"`
	Width    float64         `yaml:"width"`
	Height   float64         `yaml:"height"`
	Boss     bool            `yaml:"boss"`
	Movement behavior.Config `yaml:"movement"`
	Attack   behavior.Config `yaml:"attack"`
}

// BasicEnemy is the built-in fallback category.
func BasicEnemy() EnemySpec {
	return EnemySpec{
		Health:   20,
		Score:    75,
		AssetKey: "enemy",
		Width:    32,
		Height:   32,
		Movement: behavior.Config{Type: behavior.TagStraight, Params: map[string]any{"speed": 100}},
		Attack:   behavior.Config{Type: behavior.TagNone},
	}
}

func (s EnemySpec) valid() bool {
	return s.Health > 0
}

func (s EnemySpec) withDefaults() EnemySpec {
	if s.Score <= 0 {
		s.Score = 50
	}
	if s.AssetKey == "" {
		s.AssetKey = "enemy"
	}
	if s.Width <= 0 {
		s.Width = 32
	}
	if s.Height <= 0 {
		s.Height = 32
	}
	return s
}

// SpawnPolicy maps category names to enemy configuration and classifier
// tags to categories.
type SpawnPolicy struct {
	Default    string               `yaml:"default"`
	PacketMap  map[string]string    `yaml:"packet_map"`
	Categories map[string]EnemySpec `yaml:"categories"`
}

// DefaultSpawnPolicy is used when enemies.yaml cannot be read.
func DefaultSpawnPolicy() *SpawnPolicy {
	return &SpawnPolicy{
		Default: BasicCategory,
		PacketMap: map[string]string{
			"tcp":  "interceptor",
			"icmp": "fighter",
			"arp":  "scout",
			"udp":  "gunship",
		},
		Categories: map[string]EnemySpec{BasicCategory: BasicEnemy()},
	}
}

func ParseSpawnPolicy(data []byte) (*SpawnPolicy, error) {
	var p SpawnPolicy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", EnemiesFile, err)
	}
	if p.Default == "" {
		p.Default = BasicCategory
	}
	return &p, nil
}

func LoadSpawnPolicy() (*SpawnPolicy, error) {
	data, err := Load(EnemiesFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", EnemiesFile, err)
	}
	return ParseSpawnPolicy(data)
}

// Lookup resolves a category, falling back to the default category and then
// to the built-in basic one. It returns the name that was actually used.
func (p *SpawnPolicy) Lookup(category string) (string, EnemySpec) {
	name := strings.ToLower(strings.TrimSpace(category))
	if p != nil {
		if spec, ok := p.Categories[name]; ok && spec.valid() {
			return name, spec.withDefaults()
		}
		log.Printf("prefabs: category %q missing or malformed, using %q", category, p.Default)
		if spec, ok := p.Categories[p.Default]; ok && spec.valid() {
			return p.Default, spec.withDefaults()
		}
	}
	return BasicCategory, BasicEnemy()
}

// CategoryFor maps a classifier tag to a category name. Unknown tags map to
// the default category.
func (p *SpawnPolicy) CategoryFor(tag string) string {
	if p == nil {
		return BasicCategory
	}
	if c, ok := p.PacketMap[strings.ToLower(tag)]; ok && c != "" {
		return c
	}
	return p.Default
}

// WeightedCategory is one entry of a wave mix.
type WeightedCategory struct {
	Category string `yaml:"category"`
	Weight   int    `yaml:"weight"`
}

type WaveSpec struct {
	Name     string             `yaml:"name"`
	Count    int                `yaml:"count"`
	Interval float64            `yaml:"interval"`
	Mix      []WeightedCategory `yaml:"mix"`
}

// WavesSpec is the wave table.
type WavesSpec struct {
	MaxWaves           int        `yaml:"max_waves"`
	BossEvery          int        `yaml:"boss_every"`
	BossCategory       string     `yaml:"boss_category"`
	TransitionDuration float64    `yaml:"transition_duration"`
	Waves              []WaveSpec `yaml:"waves"`
}

func DefaultWaves() WavesSpec {
	return WavesSpec{
		MaxWaves:           10,
		BossEvery:          5,
		BossCategory:       "boss",
		TransitionDuration: 3,
		Waves: []WaveSpec{
			{Name: "Incoming", Count: 5, Interval: 1.5, Mix: []WeightedCategory{{Category: BasicCategory, Weight: 1}}},
		},
	}
}

func LoadWaves() (WavesSpec, error) {
	spec, err := LoadSpec[WavesSpec](WavesFile)
	if err != nil {
		return DefaultWaves(), err
	}
	def := DefaultWaves()
	if spec.MaxWaves <= 0 {
		spec.MaxWaves = def.MaxWaves
	}
	if spec.BossEvery <= 0 {
		spec.BossEvery = def.BossEvery
	}
	if spec.BossCategory == "" {
		spec.BossCategory = def.BossCategory
	}
	if spec.TransitionDuration <= 0 {
		spec.TransitionDuration = def.TransitionDuration
	}
	if len(spec.Waves) == 0 {
		spec.Waves = def.Waves
	}
	return spec, nil
}

// Wave returns the configuration of the 1-based wave n. Waves past the end
// of the table repeat the last non-empty entry with two more hostiles per
// extra wave.
func (s WavesSpec) Wave(n int) WaveSpec {
	if len(s.Waves) == 0 {
		s.Waves = DefaultWaves().Waves
	}
	if n < 1 {
		n = 1
	}
	if n <= len(s.Waves) {
		return s.Waves[n-1]
	}
	last := s.Waves[len(s.Waves)-1]
	for i := len(s.Waves) - 1; i >= 0; i-- {
		if s.Waves[i].Count > 0 {
			last = s.Waves[i]
			break
		}
	}
	last.Count += 2 * (n - len(s.Waves))
	last.Name = fmt.Sprintf("%s %d", last.Name, n)
	return last
}

// PlayerSpec configures the player ship.
type PlayerSpec struct {
	Speed          float64 `yaml:"speed"`
	ShootDelay     float64 `yaml:"shoot_delay"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletDamage   int     `yaml:"bullet_damage"`
	Health         int     `yaml:"health"`
	Lives          int     `yaml:"lives"`
	MaxLives       int     `yaml:"max_lives"`
	InvulnDuration float64 `yaml:"invulnerable_duration"`
	ContactDamage  int     `yaml:"contact_damage"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	SpawnX         float64 `yaml:"spawn_x"`
	SpawnY         float64 `yaml:"spawn_y"`
}

func DefaultPlayer() PlayerSpec {
	return PlayerSpec{
		Speed:          300,
		ShootDelay:     0.2,
		BulletSpeed:    500,
		BulletDamage:   10,
		Health:         100,
		Lives:          3,
		MaxLives:       3,
		InvulnDuration: 1.5,
		ContactDamage:  30,
		Width:          40,
		Height:         40,
		SpawnX:         400,
		SpawnY:         500,
	}
}

func LoadPlayerSpec() (PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return DefaultPlayer(), err
	}
	def := DefaultPlayer()
	if spec.Speed <= 0 {
		spec.Speed = def.Speed
	}
	if spec.ShootDelay <= 0 {
		spec.ShootDelay = def.ShootDelay
	}
	if spec.BulletSpeed <= 0 {
		spec.BulletSpeed = def.BulletSpeed
	}
	if spec.BulletDamage <= 0 {
		spec.BulletDamage = def.BulletDamage
	}
	if spec.Health <= 0 {
		spec.Health = def.Health
	}
	if spec.Lives <= 0 {
		spec.Lives = def.Lives
	}
	if spec.MaxLives < spec.Lives {
		spec.MaxLives = spec.Lives
	}
	if spec.InvulnDuration < 0 {
		spec.InvulnDuration = def.InvulnDuration
	}
	if spec.ContactDamage <= 0 {
		spec.ContactDamage = def.ContactDamage
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		spec.Width, spec.Height = def.Width, def.Height
	}
	if spec.SpawnX == 0 && spec.SpawnY == 0 {
		spec.SpawnX, spec.SpawnY = def.SpawnX, def.SpawnY
	}
	return spec, nil
}
