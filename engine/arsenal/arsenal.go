package arsenal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// Arsenal is a library of validated weapon configs keyed by name
type Arsenal map[string]*core.WeaponConfig

// Names returns the weapon keys in stable order
func (a Arsenal) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Load reads an arsenal from a JSON file. Every entry is validated;
// entries without an explicit name take their map key.
func Load(path string) (Arsenal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arsenal: %w", err)
	}
	var a Arsenal
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse arsenal %s: %w", path, err)
	}
	for key, cfg := range a {
		if cfg.Name == "" {
			cfg.Name = key
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("weapon %q: %w", key, err)
		}
	}
	return a, nil
}

// Save writes the arsenal to a JSON file
func (a Arsenal) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Default returns the built-in weapon table
func Default() Arsenal {
	a := Arsenal{
		"pistol": {
			Mode: core.FireSingle, MagazineSize: 12, ReserveCap: 48,
			FireInterval: 0.25, ReloadTime: 1.2,
			Damage: 12, ProjectileSpeed: 24,
			SpreadDeg: 2.0, Spread: core.SpreadTime, AccuracyWindow: 0.35,
			RecoilKick: 0.15, RecoilRecovery: 12,
		},
		"rifle": {
			Mode: core.FireAuto, MagazineSize: 30, ReserveCap: 120,
			FireInterval: 0.1, ReloadTime: 1.8, AutoReload: true,
			Damage: 9, ProjectileSpeed: 30,
			SpreadDeg: 5.0, Spread: core.SpreadHybrid,
			AccuracyWindow: 0.25, RecoveryGap: 0.45, PerfectShots: 3, RampShots: 8,
			RecoilKick: 0.1, RecoilRecovery: 14,
		},
		"smg": {
			Mode: core.FireAuto, MagazineSize: 25, ReserveCap: 100,
			FireInterval: 0.07, ReloadTime: 1.5, AutoReload: true,
			Damage: 6, ProjectileSpeed: 26,
			SpreadDeg: 7.0, Spread: core.SpreadShot,
			RecoveryGap: 0.4, PerfectShots: 4, RampShots: 10,
			RecoilKick: 0.08, RecoilRecovery: 16,
		},
		"shotgun": {
			Mode: core.FireSingle, MagazineSize: 6, ReserveCap: 24,
			FireInterval: 0.9, ReloadTime: 2.4,
			Damage: 7, ProjectileSpeed: 20, Lifetime: 0.5,
			Pellets: 8, SpreadDeg: 12.0,
			RecoilKick: 0.5, RecoilRecovery: 8,
		},
		"marksman": {
			Mode: core.FireBurst, BurstCount: 3, BurstDelay: 0.08,
			MagazineSize: 21, ReserveCap: 63,
			FireInterval: 0.5, ReloadTime: 2.0,
			Damage: 18, ProjectileSpeed: 40,
			SpreadDeg: 1.5, Spread: core.SpreadTime, AccuracyWindow: 0.3,
			RecoilKick: 0.25, RecoilRecovery: 10,
		},
		"launcher": {
			Mode: core.FireSingle, MagazineSize: 1, ReserveCap: 6,
			FireInterval: 1.0, ReloadTime: 2.2, AutoReload: true,
			Damage: 25, ProjectileSpeed: 9, ProjectileScale: 2.0, Lifetime: 4,
			AOE:        core.AOEConfig{Enabled: true, Radius: 2.0, Damage: 40},
			RecoilKick: 0.8, RecoilRecovery: 6,
		},
		"railgun": {
			Mode: core.FireSingle, MagazineSize: 4, ReserveCap: 12,
			FireInterval: 1.2, ReloadTime: 2.6,
			Damage: 45, ProjectileSpeed: 60, Pierce: 3,
			RecoilKick: 0.6, RecoilRecovery: 8,
		},
	}
	for key, cfg := range a {
		cfg.Name = key
		if err := cfg.Validate(); err != nil {
			panic(fmt.Sprintf("default arsenal %q: %v", key, err))
		}
	}
	return a
}
