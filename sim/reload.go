package sim

import (
	"log"
	"path/filepath"

	"github.com/milk9111/striker/behavior"
	"github.com/milk9111/striker/prefabs"
)

// ReloadPolicy swaps the spawn policy. Hostiles already in the world keep
// their configuration.
func (s *Simulation) ReloadPolicy(p *prefabs.SpawnPolicy) {
	if p == nil {
		return
	}
	s.policy = p
	s.opts.Policy = p
}

// ReloadScripts drops compiled admission scripts so later spawns read the
// script files again.
func (s *Simulation) ReloadScripts() {
	s.factory = behavior.NewFactory(s.opts.Scripts)
}

// ApplyPrefabChanges reloads the named prefab files. The spawn policy and
// scripts apply to the next spawn; waves and player settings apply from the
// next restart. A file that fails to load leaves the current settings alone.
func (s *Simulation) ApplyPrefabChanges(names []string) {
	scripts := false
	for _, name := range names {
		switch filepath.Base(name) {
		case prefabs.EnemiesFile:
			p, err := prefabs.LoadSpawnPolicy()
			if err != nil {
				log.Printf("sim: reload %s: %v", name, err)
				continue
			}
			s.ReloadPolicy(p)
			scripts = true
			log.Printf("sim: reloaded %s", name)
		case prefabs.WavesFile:
			w, err := prefabs.LoadWaves()
			if err != nil {
				log.Printf("sim: reload %s: %v", name, err)
				continue
			}
			s.opts.Waves = w
			log.Printf("sim: reloaded %s, applies on restart", name)
		case prefabs.PlayerFile:
			p, err := prefabs.LoadPlayerSpec()
			if err != nil {
				log.Printf("sim: reload %s: %v", name, err)
				continue
			}
			s.opts.Player = p
			log.Printf("sim: reloaded %s, applies on restart", name)
		default:
			if filepath.Ext(name) == ".tengo" {
				scripts = true
			}
		}
	}
	if scripts {
		s.ReloadScripts()
	}
}
