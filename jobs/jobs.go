package jobs

import (
	"context"
	"time"

	"MediFind/logger"
	"MediFind/store"

	"github.com/robfig/cron/v3"
)

// DocumentGauge receives the collection size after every check.
type DocumentGauge interface {
	SetDocuments(collection string, count int64)
}

// CheckCollection verifies the medicines collection exists and records how
// many documents it holds. gauge may be nil.
func CheckCollection(ctx context.Context, st store.Store, log *logger.Logger, gauge DocumentGauge) (store.Stats, error) {
	stats, err := st.Describe(ctx)
	if err != nil {
		log.Error("Error describing the collection", err, nil)
		return stats, err
	}
	if !stats.Exists {
		log.Warn("collection not found in the active database", nil, map[string]interface{}{
			"collection": stats.Collection,
		})
		return stats, nil
	}
	if gauge != nil {
		gauge.SetDocuments(stats.Collection, stats.Documents)
	}
	log.Info("collection checked", nil, map[string]interface{}{
		"collection": stats.Collection,
		"documents":  stats.Documents,
	})
	return stats, nil
}

// StartCollectionMonitor runs CheckCollection once and then on schedule
// until ctx is done.
func StartCollectionMonitor(ctx context.Context, schedule string, st store.Store, log *logger.Logger, gauge DocumentGauge) (*cron.Cron, error) {
	run := func() {
		checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_, _ = CheckCollection(checkCtx, st, log, gauge)
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		log.Debug("Running collection monitor", nil, map[string]interface{}{"schedule": schedule})
		run()
	}); err != nil {
		return nil, err
	}

	run()
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
