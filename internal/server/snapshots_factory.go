package server

import (
	"errors"
	"log/slog"

	"github.com/preston-bernstein/f2p-catalog-service/internal/app/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/config"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
	"github.com/preston-bernstein/f2p-catalog-service/internal/poller"
	"github.com/preston-bernstein/f2p-catalog-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
}

// pollerWriter returns the writer as a poller.SnapshotWriter, or a nil
// interface when snapshots are disabled.
func (c snapshotComponents) pollerWriter() poller.SnapshotWriter {
	if c.writer == nil {
		return nil
	}
	return c.writer
}

func buildSnapshots(cfg config.Config, logger *slog.Logger) snapshotComponents {
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Dir == "" {
		logging.Info(logger, "catalog snapshots disabled")
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.Snapshots.Dir),
		writer: snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays),
	}
}

// seedFromSnapshot loads the newest on-disk catalog so the service is ready
// before the first upstream fetch completes.
func seedFromSnapshot(svc *games.Service, store snapshots.Store, logger *slog.Logger) bool {
	if store == nil || svc == nil {
		return false
	}
	snap, err := store.LoadLatest()
	if err != nil {
		if !errors.Is(err, snapshots.ErrNoSnapshot) {
			logging.Warn(logger, "catalog snapshot seed failed", slog.Any("err", err))
		}
		return false
	}
	svc.ReplaceGames(snap.Games)
	logging.Info(logger, "catalog seeded from snapshot",
		logging.FieldDate, snap.Date,
		logging.FieldCount, len(snap.Games),
		logging.FieldCatalogVersion, svc.Version(),
	)
	return true
}
