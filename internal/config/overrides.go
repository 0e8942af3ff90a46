package config

// Overrides holds command-line values that take priority over the config
// file. Zero values leave the config unchanged.
type Overrides struct {
	Debug   bool
	LogFile string
	Width   int
	Height  int
	Grid    int
	Rays    int
	Seed    int64
	Indexed *bool
}

// Apply applies the overrides to cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Width > 0 {
		cfg.Viewport.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Viewport.Height = o.Height
	}
	if o.Grid > 0 {
		cfg.Scene.Grid = o.Grid
	}
	if o.Rays > 0 {
		cfg.Bench.Rays = o.Rays
	}
	if o.Seed != 0 {
		cfg.Bench.Seed = o.Seed
	}
	if o.Indexed != nil {
		cfg.Picking.Indexed = *o.Indexed
	}
}
