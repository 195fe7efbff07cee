package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// StartOverdueSweep schedules RecomputeOverdue on spec, a six-field cron
// expression (seconds first) or a descriptor such as "@every 5m". The
// caller stops the returned scheduler.
func (a *App) StartOverdueSweep(spec string) (*cron.Cron, error) {
	c := cron.NewWithLocation(time.UTC)
	err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.OpTimeout)
		defer cancel()
		n, err := a.Ledger.RecomputeOverdue(ctx, time.Now())
		if err != nil {
			a.Log.Error("overdue sweep failed", "err", err)
			return
		}
		if n > 0 {
			a.Log.Info("overdue sweep", "updated", n)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "overdue sweep %q", spec)
	}
	c.Start()
	return c, nil
}
