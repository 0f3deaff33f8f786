package domain

// Config represents the demo configuration, optionally loaded from demo.yaml.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Probe  ProbeDefaults
	Runs   RunsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LogConfig struct {
	Debug  bool
	Format string // json|text
}

type ProbeDefaults struct {
	Target      string
	Requests    int
	Concurrency int
}

type RunsConfig struct {
	Dir        string
	Index      bool
	MongoURI   string
	MongoDB    string
	Collection string
}

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8080

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// DefaultConfig provides the fixed bind address and sane defaults if demo.yaml
// is missing or partial.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Log: LogConfig{
			Format: LogFormatJSON,
		},
		Probe: ProbeDefaults{
			Target:      "http://localhost:8080",
			Requests:    10,
			Concurrency: 2,
		},
		Runs: RunsConfig{
			Dir:        "runs",
			Index:      true,
			MongoDB:    "demo",
			Collection: "probe_runs",
		},
	}
}

// ProjectSpec describes a directory to scaffold with `demo init`.
type ProjectSpec struct {
	Root   string
	Config Config
}
