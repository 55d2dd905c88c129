// Package scheduler runs the periodic catalog sync and reconciliation jobs on cron
// specs (github.com/robfig/cron/v3).
//
// Overlap is excluded twice: cron's SkipIfStillRunning drops a tick while the same job
// is still running, and every job runs under a reconcile.RunLock shared with the
// manual entry points, so an import never runs alongside a reconciliation pass.
package scheduler
