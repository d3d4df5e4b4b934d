package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.Catalog = mergeCatalog(result.Catalog, override.Catalog)
	result.Launch = mergeLaunch(result.Launch, override.Launch)
	result.Screen = mergeScreen(result.Screen, override.Screen)
	result.Ticker = mergeTicker(result.Ticker, override.Ticker)
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}

	result.Extensions = mergeExtensions(base.Extensions, override.Extensions)
	return &result
}

func mergeCatalog(base, override CatalogConfig) CatalogConfig {
	result := base
	if override.File != "" {
		result.File = override.File
	}
	if override.PageSize != 0 {
		result.PageSize = override.PageSize
	}
	if len(override.Hidden) > 0 {
		result.Hidden = override.Hidden
	}
	return result
}

func mergeLaunch(base, override LaunchConfig) LaunchConfig {
	result := base
	if override.StaggerMs != 0 {
		result.StaggerMs = override.StaggerMs
	}
	if override.PopupBackend != "" {
		result.PopupBackend = override.PopupBackend
	}
	if override.AssumeYes {
		result.AssumeYes = true
	}
	return result
}

func mergeScreen(base, override ScreenConfig) ScreenConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.WatchDebounceMs != 0 {
		result.WatchDebounceMs = override.WatchDebounceMs
	}
	return result
}

func mergeTicker(base, override TickerConfig) TickerConfig {
	result := base
	if override.Enabled != nil {
		enabled := *override.Enabled
		result.Enabled = &enabled
	}
	if override.IntervalSeconds != 0 {
		result.IntervalSeconds = override.IntervalSeconds
	}
	if len(override.Symbols) > 0 {
		result.Symbols = override.Symbols
	}
	return result
}

// mergeExtensions merges extension maps one level deep; matching map values
// are merged key by key, anything else is replaced.
func mergeExtensions(base, override map[string]interface{}) map[string]interface{} {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for key, value := range override {
		if baseMap, ok := result[key].(map[string]interface{}); ok {
			if overrideMap, ok := value.(map[string]interface{}); ok {
				merged := make(map[string]interface{}, len(baseMap)+len(overrideMap))
				for k, v := range baseMap {
					merged[k] = v
				}
				for k, v := range overrideMap {
					merged[k] = v
				}
				result[key] = merged
				continue
			}
		}
		result[key] = value
	}
	return result
}
