package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePurger struct {
	cutoff  time.Time
	deleted int64
	err     error
	calls   int
}

func (f *fakePurger) DeleteReadBefore(_ context.Context, _ *gorm.DB, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.deleted, f.err
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newCleanupJob(t *testing.T, purger *fakePurger, days int) *notificationCleanupJob {
	t.Helper()
	job, err := NewNotificationCleanupJob(NotificationCleanupJobParams{
		Logger:        testLogger(),
		DB:            passthroughTx{},
		Repository:    purger,
		RetentionDays: days,
	})
	require.NoError(t, err)
	return job.(*notificationCleanupJob)
}

func TestNotificationCleanupJobUsesRetentionCutoff(t *testing.T) {
	now := time.Date(2026, 5, 31, 8, 0, 0, 0, time.UTC)
	purger := &fakePurger{deleted: 7}
	job := newCleanupJob(t, purger, 30)
	job.now = func() time.Time { return now }

	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 1, purger.calls)
	require.True(t, purger.cutoff.Equal(now.AddDate(0, 0, -30)))
}

func TestNotificationCleanupJobDefaultsRetention(t *testing.T) {
	job := newCleanupJob(t, &fakePurger{}, 0)
	require.Equal(t, defaultRetentionDays, job.days)
}

func TestNotificationCleanupJobPropagatesErrors(t *testing.T) {
	job := newCleanupJob(t, &fakePurger{err: errors.New("boom")}, 30)
	require.Error(t, job.Run(context.Background()))
}
