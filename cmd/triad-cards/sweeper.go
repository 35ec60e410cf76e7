package main

import (
	"time"

	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/logging"
	"github.com/triadlabs/triad-cards/internal/realtime"
	"github.com/triadlabs/triad-cards/internal/service"
	"github.com/triadlabs/triad-cards/internal/storage"

	"github.com/go-co-op/gocron/v2"
)

const sweepBatchSize = 20

// startResolutionSweeper schedules a periodic job that finds battles with
// both selections in place but no terminal state and resolves them. Battles
// resolved by their inline trigger in the meantime come back as no-op
// successes, so racing the triggers is harmless.
func startResolutionSweeper(repo storage.Repository, hub *realtime.Hub, interval time.Duration) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ids, err := repo.ListResolvableBattleIDs(sweepBatchSize)
			if err != nil {
				logging.Error("sweeper failed to list battles", err, nil)
				return
			}
			for _, id := range ids {
				if _, err := service.Resolve(repo, hub, id); err != nil {
					logging.Error("sweeper failed to resolve battle", err, logging.Fields{constants.LogFieldBattleID: id})
				}
			}
		}),
	)
	if err != nil {
		return err
	}
	sched.Start()
	return nil
}
