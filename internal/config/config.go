// Package config provides YAML-based configuration loading for the
// glint platform: engine defaults, per-effect parameters, storage and
// SSH settings.
package config

// Config is the root configuration document.
type Config struct {
	Engine   EngineConfig  `yaml:"engine"`
	Effects  EffectsConfig `yaml:"effects"`
	SSH      SSHConfig     `yaml:"ssh"`
	DBPath   string        `yaml:"db_path"`
	LogLevel string        `yaml:"log_level"`
}

// EngineConfig holds the render engine defaults applied to every run
// unless overridden by CLI flags.
type EngineConfig struct {
	// FPS is the target frame rate; values <= 0 select the engine's
	// built-in default interval.
	FPS int `yaml:"fps"`

	// Mode selects the buffer handoff strategy: "buffered" or "direct".
	Mode string `yaml:"mode"`

	// Quality selects the sampling filter for scaled presentation:
	// "low", "medium" or "high".
	Quality string `yaml:"quality"`

	// ClearColor is the hex color shown before the first frame lands.
	ClearColor string `yaml:"clear_color"`
}

// EffectsConfig groups the parameter blocks of the shipping effects.
type EffectsConfig struct {
	Bounce    BounceConfig    `yaml:"bounce"`
	Plasma    PlasmaConfig    `yaml:"plasma"`
	Starfield StarfieldConfig `yaml:"starfield"`
}

// BounceConfig parameterizes the bouncing, pulsing rectangle.
type BounceConfig struct {
	// Speed is the drift velocity in normalized canvas units per second.
	Speed float64 `yaml:"speed"`

	// Size is the rectangle's base side as a fraction of the smaller
	// canvas dimension.
	Size float64 `yaml:"size"`

	// PulseHz is the frequency of the size/color pulse in cycles per
	// second of logic time.
	PulseHz float64 `yaml:"pulse_hz"`

	// PulseAmp is the relative size swing of the pulse (0.35 means the
	// side oscillates within +-35% of its base).
	PulseAmp float64 `yaml:"pulse_amp"`

	ColorA     string `yaml:"color_a"`
	ColorB     string `yaml:"color_b"`
	Background string `yaml:"background"`
}

// PlasmaConfig parameterizes the sine-field palette animation.
type PlasmaConfig struct {
	// Scale is the spatial frequency of the field; higher values pack
	// more bands onto the canvas.
	Scale float64 `yaml:"scale"`

	// Speed multiplies logic time before it drives the field.
	Speed float64 `yaml:"speed"`
}

// StarfieldConfig parameterizes the streaming particle field.
type StarfieldConfig struct {
	Stars int     `yaml:"stars"`
	Speed float64 `yaml:"speed"`

	// Seed makes the field deterministic; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// SSHConfig holds the remote-session server settings.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleMinutes int    `yaml:"idle_minutes"`
}
