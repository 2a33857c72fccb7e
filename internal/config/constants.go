package config

import "time"

const (
	envConfigFile       = "CONFIG_FILE"
	envPort             = "PORT"
	envPollInterval     = "POLL_INTERVAL"
	envProvider         = "PROVIDER"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken       = "ADMIN_TOKEN"
	envSnapshotOn       = "SNAPSHOT_ENABLED"
	envSnapshotDir      = "SNAPSHOT_DIR"
	envSnapshotKeepDays = "SNAPSHOT_RETENTION_DAYS"
	envSessionTTL       = "SESSION_TTL"
	envSessionMax       = "SESSION_MAX"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	defaultPort = "4000"
	// The upstream catalog changes a few times a day; polling more often only burns quota.
	defaultPollInterval     = 30 * Duration(time.Minute)
	defaultProvider         = "fixture"
	defaultMetricsPort      = "9090"
	defaultServiceName      = "f2p-catalog-service"
	defaultSnapshotEnabled  = true
	defaultSnapshotDir      = "data/snapshots"
	defaultSnapshotKeepDays = 7
	defaultSessionTTL       = 30 * Duration(time.Minute)
	defaultSessionMax       = 1000
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)
