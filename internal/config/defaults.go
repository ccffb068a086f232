package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/rirekisho/data/applicants.db"
	}
	if cfg.Search.DefaultMaxResults == 0 {
		cfg.Search.DefaultMaxResults = 10
	}
	if cfg.Search.MaxResultsCap == 0 {
		cfg.Search.MaxResultsCap = 1000
	}
	if cfg.Search.DefaultFuzzyThreshold == 0 {
		cfg.Search.DefaultFuzzyThreshold = 0.8
	}
	if cfg.Search.ShardSize == 0 {
		cfg.Search.ShardSize = 32
	}
	if cfg.Search.AutomatonCacheSize == 0 {
		cfg.Search.AutomatonCacheSize = 16
	}
	if cfg.Search.CoverageWeight == 0 {
		cfg.Search.CoverageWeight = 10.0
	}
	if cfg.Search.OccurrenceWeight == 0 {
		cfg.Search.OccurrenceWeight = 1.0
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".txt", ".md", ".pdf", ".docx", ".odt", ".rtf", ".xlsx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
