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
		cfg.Storage.DatabasePath = "/usr/local/var/pantry/data/db/pantry.db"
	}
	if cfg.Storage.ProductIndexPath == "" {
		cfg.Storage.ProductIndexPath = "/usr/local/var/pantry/data/indices/products"
	}
	if cfg.Suggest.AutocompleteLimit == 0 {
		cfg.Suggest.AutocompleteLimit = 8
	}
	if cfg.Insights.Persona == "" {
		cfg.Insights.Persona = "standard"
	}
	if cfg.Insights.TimeoutSeconds == 0 {
		cfg.Insights.TimeoutSeconds = 30
	}
}
