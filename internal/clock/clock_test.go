package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleFiresWithMatchingGeneration(t *testing.T) {
	var s Scheduler
	fired := make(chan int, 1)
	gen := s.Schedule(10*time.Millisecond, func(g int) { fired <- g })

	select {
	case got := <-fired:
		require.Equal(t, gen, got)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for fire")
	}
}

func TestRescheduleInvalidatesPriorGeneration(t *testing.T) {
	var s Scheduler
	firstGen := s.Schedule(5*time.Millisecond, func(g int) {})
	secondGen := s.Schedule(5*time.Millisecond, func(g int) {})
	require.NotEqual(t, firstGen, secondGen)
	require.Equal(t, secondGen, s.Generation())
}

func TestStopPreventsLateFireFromMatchingCurrentGeneration(t *testing.T) {
	var s Scheduler
	staleGen := s.Schedule(5*time.Millisecond, func(g int) {})
	s.Stop()
	time.Sleep(20 * time.Millisecond)
	require.NotEqual(t, staleGen, s.Generation())
}

func TestRemainingMsFloorsAtZero(t *testing.T) {
	require.EqualValues(t, 0, RemainingMs(1000, 0, 5000))
	require.EqualValues(t, 6000, RemainingMs(10000, 0, 4000))
}
