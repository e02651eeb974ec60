package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Version != "" {
		result.Version = override.Version
	}

	result.Backend = mergeBackend(result.Backend, override.Backend)
	result.Scan = mergeScan(result.Scan, override.Scan)
	result.Dashboard = mergeDashboard(result.Dashboard, override.Dashboard)

	// Merge extensions
	if override.Extensions != nil {
		if result.Extensions == nil {
			result.Extensions = make(map[string]interface{})
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := result.Extensions[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						result.Extensions[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			result.Extensions[key] = value
		}
	}

	return &result
}

func mergeBackend(base, override BackendConfig) BackendConfig {
	result := base

	if override.URL != "" {
		result.URL = override.URL
	}
	if override.Timeout > 0 {
		result.Timeout = override.Timeout
	}
	if override.Password != "" {
		result.Password = override.Password
	}
	if override.Insecure {
		result.Insecure = override.Insecure
	}

	return result
}

func mergeScan(base, override ScanConfig) ScanConfig {
	result := base

	if override.PollInterval > 0 {
		result.PollInterval = override.PollInterval
	}

	return result
}

func mergeDashboard(base, override DashboardConfig) DashboardConfig {
	result := base

	if override.PageSize > 0 {
		result.PageSize = override.PageSize
	}
	if override.FetchTimeout > 0 {
		result.FetchTimeout = override.FetchTimeout
	}
	if override.DefaultRange != "" {
		result.DefaultRange = override.DefaultRange
	}

	return result
}
