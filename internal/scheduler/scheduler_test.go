package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/pulseboard/backend/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	failures int32 // number of leading calls that fail
	calls    atomic.Int32
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(ctx context.Context) error {
	n := j.calls.Add(1)
	if n <= j.failures {
		return errors.New("transient failure")
	}
	return nil
}

func newTestScheduler(t *testing.T, retries int) *Scheduler {
	t.Helper()
	return New(logger.Nop(), WithRetry(retries, 0))
}

func TestScheduler_AddJob(t *testing.T) {
	s := newTestScheduler(t, 0)

	require.NoError(t, s.AddJob(&fakeJob{name: "a", schedule: "@every 1h"}))
	assert.Error(t, s.AddJob(&fakeJob{name: "a", schedule: "@every 1h"}), "duplicate name")
	assert.Error(t, s.AddJob(&fakeJob{name: "b", schedule: "not a schedule"}))

	assert.Equal(t, []string{"a"}, s.GetAllJobs())
}

func TestScheduler_RetriesThenSucceeds(t *testing.T) {
	s := newTestScheduler(t, 2)
	job := &fakeJob{name: "flaky", schedule: "@every 1h", failures: 2}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJobSync("flaky")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, int32(3), job.calls.Load())
}

func TestScheduler_FailureRecorded(t *testing.T) {
	s := newTestScheduler(t, 1)
	job := &fakeJob{name: "broken", schedule: "@every 1h", failures: 100}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJobSync("broken")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "transient failure", result.Error)
	assert.Equal(t, int32(2), job.calls.Load())

	history, err := s.GetJobHistory("broken")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.Equal(t, 0.0, history.GetSuccessRate())

	stats := s.GetJobStats()["broken"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailureCount)
	assert.NotNil(t, stats.LastFailure)
	assert.Nil(t, stats.LastSuccess)
}

func TestScheduler_RemoveJob(t *testing.T) {
	s := newTestScheduler(t, 0)
	require.NoError(t, s.AddJob(&fakeJob{name: "a", schedule: "@every 1h"}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Empty(t, s.GetAllJobs())

	_, err := s.RunJobSync("a")
	assert.Error(t, err)
	_, err = s.NextRun("a")
	assert.Error(t, err)
}

func TestScheduler_StopCancelsRuns(t *testing.T) {
	s := New(logger.Nop(), WithRetry(5, time.Hour))
	job := &fakeJob{name: "slow", schedule: "@every 1h", failures: 100}
	require.NoError(t, s.AddJob(job))

	s.Start()
	s.Stop()

	result, err := s.RunJobSync("slow")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, int32(0), job.calls.Load(), "no attempt after stop")
}

func TestJobHistory_Bounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "x", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, historyLimit)
	assert.Len(t, h.GetLatestResults(5), 5)
	assert.Empty(t, (&JobHistory{}).GetLatestResults(3))
	assert.InDelta(t, 0.5, h.GetSuccessRate(), 1e-9)
}

func TestScheduler_StatsTrackLastOutcomes(t *testing.T) {
	s := newTestScheduler(t, 0)
	job := &fakeJob{name: "refresh", schedule: "@every 1h", failures: 1}
	require.NoError(t, s.AddJob(job))

	first, err := s.RunJobSync("refresh")
	require.NoError(t, err)
	require.False(t, first.Success)
	second, err := s.RunJobSync("refresh")
	require.NoError(t, err)
	require.True(t, second.Success)

	stats := s.GetJobStats()["refresh"]
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	assert.Equal(t, 1, stats.FailureCount)
	require.NotNil(t, stats.LastFailure)
	require.NotNil(t, stats.LastSuccess)
	assert.Equal(t, first.StartTime, *stats.LastFailure)
	assert.Equal(t, second.StartTime, *stats.LastSuccess)
	assert.Equal(t, *stats.LastSuccess, *stats.LastRun)
}
