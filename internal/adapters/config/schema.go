package config

// fileDTO mirrors the on-disk shape of ripple.yaml.
type fileDTO struct {
	// Root optionally relocates the project root relative to the config file.
	Root string `yaml:"root"`

	Styles  stylesDTO  `yaml:"styles"`
	Scripts scriptsDTO `yaml:"scripts"`
	Watch   watchDTO   `yaml:"watch"`
	Serve   serveDTO   `yaml:"serve"`
}

type stylesDTO struct {
	Source   []string `yaml:"source"`
	Output   string   `yaml:"output"`
	Include  []string `yaml:"include"`
	Ext      []string `yaml:"extensions"`
	Compiler []string `yaml:"compiler"`
}

type scriptsDTO struct {
	Entries []string `yaml:"entries"`
	Output  string   `yaml:"output"`
	Ext     []string `yaml:"extensions"`
	Bundler []string `yaml:"bundler"`
}

type watchDTO struct {
	DebounceMs int      `yaml:"debounce_ms"`
	Exclude    []string `yaml:"exclude"`
	SkipDirs   []string `yaml:"skip_dirs"`
}

type serveDTO struct {
	Addr string `yaml:"addr"`
}
