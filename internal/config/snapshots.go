package config

// SnapshotConfig controls on-disk catalog snapshots.
type SnapshotConfig struct {
	Enabled       bool
	Dir           string
	RetentionDays int
}

func loadSnapshots(src source) SnapshotConfig {
	return SnapshotConfig{
		Enabled:       src.boolOrDefault(envSnapshotOn, defaultSnapshotEnabled),
		Dir:           src.stringOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: src.intOrDefault(envSnapshotKeepDays, defaultSnapshotKeepDays),
	}
}
