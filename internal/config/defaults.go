package config

// DefaultPrecision matches the rounding of the similarity endpoint.
const DefaultPrecision = 4

// ApplyDefaults sets default values for any zero or unset values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 30
	}
	if cfg.Data.MappingPath == "" {
		cfg.Data.MappingPath = "/usr/local/var/nasari/resource/bn35-wn31.map"
	}
	if cfg.Data.VectorsPath == "" {
		cfg.Data.VectorsPath = "/usr/local/var/nasari/resource/NASARI_embed_english.txt"
	}
	if cfg.Similarity.Precision == nil {
		p := DefaultPrecision
		cfg.Similarity.Precision = &p
	}
}
