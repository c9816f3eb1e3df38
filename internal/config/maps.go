package config

type MapsConfig struct {
	GoogleAPIKey string `yaml:"google_api_key"`
	// Geocoding enriches the stored request address for display. Matching
	// never depends on it, so an empty key simply disables enrichment.
	GeocodingEnabled bool `yaml:"geocoding_enabled"`
}

func loadMapsConfig() *MapsConfig {
	key := getEnv("GOOGLE_MAPS_API_KEY", "")
	return &MapsConfig{
		GoogleAPIKey:     key,
		GeocodingEnabled: getEnvAsBool("GEOCODING_ENABLED", key != ""),
	}
}
