package config

// Merge overlays over onto base and returns the result. Non-zero values in
// over win; maps are merged key by key. Neither input is modified.
func Merge(base, over *Config) *Config {
	merged := *base
	if over == nil {
		return &merged
	}

	if over.DataURL != "" {
		merged.DataURL = over.DataURL
	}
	if over.Mode != "" {
		merged.Mode = over.Mode
	}
	if over.PageDescription != "" {
		merged.PageDescription = over.PageDescription
	}
	if over.City != "" {
		merged.City = over.City
	}
	if over.Year != 0 {
		merged.Year = over.Year
	}
	if len(over.Parties) > 0 {
		merged.Parties = over.Parties
	}
	if over.OutputFormat != "" {
		merged.OutputFormat = over.OutputFormat
	}
	if over.ExportConcurrency != 0 {
		merged.ExportConcurrency = over.ExportConcurrency
	}
	merged.PartyColors = mergeMap(base.PartyColors, over.PartyColors)
	merged.ShortNames = mergeMap(base.ShortNames, over.ShortNames)
	return &merged
}

func mergeMap(base, over map[string]string) map[string]string {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// ApplyEnv overrides data_url from the CANADAVOTES_DATA_URL variable.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvDataURL); v != "" {
		cfg.DataURL = v
	}
}

// Resolve loads the global config and the config in dir, applies the
// environment and returns the merged result: env > repo > global.
func Resolve(dir string, getenv func(string) string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, err
	}
	repo, err := Load(dir)
	if err != nil {
		return nil, err
	}
	cfg := Merge(global, repo)
	ApplyEnv(cfg, getenv)
	return cfg, nil
}
