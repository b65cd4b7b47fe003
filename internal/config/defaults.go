package config

import (
	_ "embed"
)

//go:embed defaults/glint.yaml
var defaultYAML []byte

// Default returns the built-in configuration used when no config file
// is found anywhere on the search path.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			FPS:        60,
			Mode:       "buffered",
			Quality:    "high",
			ClearColor: "#0f0f23",
		},
		Effects: EffectsConfig{
			Bounce: BounceConfig{
				Speed:      0.55,
				Size:       0.22,
				PulseHz:    0.8,
				PulseAmp:   0.35,
				ColorA:     "#ff5f87",
				ColorB:     "#5fd7ff",
				Background: "#10101c",
			},
			Plasma: PlasmaConfig{
				Scale: 3.0,
				Speed: 1.0,
			},
			Starfield: StarfieldConfig{
				Stars: 220,
				Speed: 0.9,
				Seed:  1,
			},
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleMinutes: 30,
		},
		DBPath:   "~/.glint/runs.db",
		LogLevel: "info",
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
