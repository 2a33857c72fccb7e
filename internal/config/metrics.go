package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(src source) MetricsConfig {
	return MetricsConfig{
		Enabled:      src.boolOrDefault(envMetricsOn, true),
		Port:         src.stringOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: src.stringOrDefault(envOtelEndpoint, ""),
		ServiceName:  src.stringOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: src.boolOrDefault(envOtelInsecure, true),
	}
}
