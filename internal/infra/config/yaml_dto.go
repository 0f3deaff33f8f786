package config

// YAMLConfig mirrors demo.yaml. Pointers distinguish "absent" from zero values.
type YAMLConfig struct {
	Server YAMLServer `yaml:"server"`
	Log    YAMLLog    `yaml:"log"`
	Probe  YAMLProbe  `yaml:"probe"`
	Runs   YAMLRuns   `yaml:"runs"`
}

type YAMLServer struct {
	Host string `yaml:"host"`
	Port *int   `yaml:"port"`
}

type YAMLLog struct {
	Debug  *bool  `yaml:"debug"`
	Format string `yaml:"format"`
}

type YAMLProbe struct {
	Target      string `yaml:"target"`
	Requests    *int   `yaml:"requests"`
	Concurrency *int   `yaml:"concurrency"`
}

type YAMLRuns struct {
	Dir   string    `yaml:"dir"`
	Index *bool     `yaml:"index"`
	Mongo YAMLMongo `yaml:"mongo"`
}

type YAMLMongo struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}
