package config

// Config is the top-level atlas configuration, corresponding to .atlas.yml.
type Config struct {
	Catalog   string       `yaml:"catalog" koanf:"catalog"` // definition file; empty means the built-in catalog
	Title     string       `yaml:"title" koanf:"title"`
	OutputDir string       `yaml:"output_dir" koanf:"output_dir"`
	Snapshot  string       `yaml:"snapshot" koanf:"snapshot"`
	Server    ServerConfig `yaml:"server" koanf:"server"`
	Layout    LayoutConfig `yaml:"layout" koanf:"layout"`
}

// ServerConfig holds web explorer settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// LayoutConfig tunes the spring layout.
type LayoutConfig struct {
	K          float64 `yaml:"k" koanf:"k"`
	Iterations int     `yaml:"iterations" koanf:"iterations"`
	Seed       int64   `yaml:"seed" koanf:"seed"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:     "CBA System Visualization",
		OutputDir: "site",
		Snapshot:  "atlas.db",
		Server: ServerConfig{
			Port: 8080,
		},
		Layout: LayoutConfig{
			K:          0.5,
			Iterations: 50,
			Seed:       1,
		},
	}
}
