package student

import (
	"context"
	"testing"
	"time"

	"github.com/dyluth/hackathon/internal/ledger"
	"github.com/dyluth/hackathon/internal/queue"
	"github.com/dyluth/hackathon/pkg/checksum"
	"github.com/dyluth/hackathon/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStudent(t *testing.T) (*Student, *queue.Memory, *ledger.Ledger) {
	t.Helper()
	q := queue.NewMemory()
	t.Cleanup(func() { q.Close() })
	l := ledger.New()
	return New(7, q, l), q, l
}

func pkgEvent(name string) event.Event {
	return event.PackageReady(event.Package{Name: name})
}

func handle(t *testing.T, s *Student, ev event.Event) bool {
	t.Helper()
	done, err := s.Handle(context.Background(), ev)
	require.NoError(t, err)
	return done
}

func TestStudent_BuildsThenTerminates(t *testing.T) {
	s, q, l := setupStudent(t)
	idea := event.Idea{Name: "Toaster for Dentists", PackagesRequired: 2}

	ctx := context.Background()
	require.NoError(t, q.Send(ctx, event.NewIdea(idea)))
	require.NoError(t, q.Send(ctx, pkgEvent("p1")))
	require.NoError(t, q.Send(ctx, pkgEvent("p2")))
	require.NoError(t, q.Send(ctx, event.WorkDone()))

	runCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, s.Run(runCtx))

	recs := l.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, 7, recs[0].StudentID)
	assert.Equal(t, "Toaster for Dentists", recs[0].Idea)
	assert.Equal(t, []string{"p1", "p2"}, recs[0].Packages)

	assert.Nil(t, s.Idea())
	assert.Empty(t, s.Inventory())
	assert.False(t, s.DeferredIdea())
	assert.Equal(t, 1, s.Builds())
	assert.Equal(t, 0, q.Len(), "nothing should be sent back")
}

func TestStudent_BuildWaitsForPackages(t *testing.T) {
	s, _, l := setupStudent(t)

	assert.False(t, handle(t, s, pkgEvent("p1")))
	assert.False(t, handle(t, s, event.NewIdea(event.Idea{Name: "Drone for Farmers", PackagesRequired: 3})))
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, []event.Package{{Name: "p1"}}, s.Inventory())

	handle(t, s, pkgEvent("p2"))
	assert.Equal(t, 0, l.Len())

	handle(t, s, pkgEvent("p3"))
	require.Equal(t, 1, l.Len())
	assert.Equal(t, []string{"p1", "p2", "p3"}, l.Records()[0].Packages)
	assert.Nil(t, s.Idea())
}

func TestStudent_ConsumesOldestPackagesFirst(t *testing.T) {
	s, _, l := setupStudent(t)

	for _, p := range []string{"a", "b", "c", "d"} {
		handle(t, s, pkgEvent(p))
	}
	handle(t, s, event.NewIdea(event.Idea{Name: "Robot for Bakers", PackagesRequired: 3}))

	require.Equal(t, 1, l.Len())
	assert.Equal(t, []string{"a", "b", "c"}, l.Records()[0].Packages)
	assert.Equal(t, []event.Package{{Name: "d"}}, s.Inventory())
}

func TestStudent_ZeroRequirementBuildsImmediately(t *testing.T) {
	s, _, l := setupStudent(t)

	handle(t, s, event.NewIdea(event.Idea{Name: "Kiosk for Nobody"}))
	require.Equal(t, 1, l.Len())
	assert.Empty(t, l.Records()[0].Packages)
	assert.Nil(t, s.Idea())
}

func TestStudent_BusyDefersNewIdea(t *testing.T) {
	s, q, l := setupStudent(t)
	first := event.Idea{Name: "A for X", PackagesRequired: 2}
	second := event.Idea{Name: "B for Y", PackagesRequired: 1}

	handle(t, s, event.NewIdea(first))
	handle(t, s, event.NewIdea(second))

	assert.Equal(t, &first, s.Idea())
	assert.True(t, s.DeferredIdea())
	require.Equal(t, 1, q.Len())
	requeued, err := q.Receive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, event.NewIdea(second), requeued)

	t.Run("sentinel is deferred rather than honored", func(t *testing.T) {
		assert.False(t, handle(t, s, event.WorkDone()))
		assert.False(t, s.DeferredIdea(), "deferring the sentinel clears the flag")

		require.Equal(t, 1, q.Len())
		ev, err := q.Receive(context.Background())
		require.NoError(t, err)
		assert.Equal(t, event.WorkDone(), ev)
	})

	t.Run("still busy so the next sentinel is deferred too", func(t *testing.T) {
		assert.False(t, handle(t, s, event.WorkDone()))
		assert.Equal(t, 1, q.Len())
		_, err := q.Receive(context.Background())
		require.NoError(t, err)
	})

	t.Run("idle student honors the sentinel", func(t *testing.T) {
		handle(t, s, pkgEvent("p1"))
		handle(t, s, pkgEvent("p2"))
		require.Equal(t, 1, l.Len())

		assert.True(t, handle(t, s, event.WorkDone()))
		assert.Equal(t, 0, q.Len())
	})
}

func TestStudent_DeferredFlagAloneVetoesSentinel(t *testing.T) {
	s, q, l := setupStudent(t)

	handle(t, s, event.NewIdea(event.Idea{Name: "A for X", PackagesRequired: 1}))
	handle(t, s, event.NewIdea(event.Idea{Name: "B for Y", PackagesRequired: 1}))
	handle(t, s, pkgEvent("p1"))
	require.Equal(t, 1, l.Len())
	require.Nil(t, s.Idea())
	require.True(t, s.DeferredIdea())

	assert.False(t, handle(t, s, event.WorkDone()))
	assert.True(t, handle(t, s, event.WorkDone()))

	// the deferred idea and one recirculated sentinel remain
	assert.Equal(t, 2, q.Len())
}

func TestStudent_ReturnsInventoryOnExit(t *testing.T) {
	s, q, l := setupStudent(t)

	handle(t, s, pkgEvent("p1"))
	handle(t, s, pkgEvent("p2"))

	assert.True(t, handle(t, s, event.WorkDone()))
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, s.Inventory())

	var names []string
	for q.Len() > 0 {
		ev, err := q.Receive(context.Background())
		require.NoError(t, err)
		require.Equal(t, event.KindPackageReady, ev.Kind)
		names = append(names, ev.Package.Name)
	}
	assert.Equal(t, []string{"p1", "p2"}, names)
}

func TestStudent_TwoStudentsShareWork(t *testing.T) {
	q := queue.NewMemory()
	defer q.Close()
	l := ledger.New()
	ctx := context.Background()

	ideas := []event.Idea{
		{Name: "A for X", PackagesRequired: 2},
		{Name: "A for Y", PackagesRequired: 1},
	}
	var wantIdeas, wantPkgs checksum.Checksum
	for _, idea := range ideas {
		require.NoError(t, q.Send(ctx, event.NewIdea(idea)))
		wantIdeas = wantIdeas.Combine(checksum.FromString(idea.Name))
	}
	for _, p := range []string{"p1", "p2", "p3"} {
		require.NoError(t, q.Send(ctx, pkgEvent(p)))
		wantPkgs = wantPkgs.Combine(checksum.FromString(p))
	}
	require.NoError(t, q.Send(ctx, event.WorkDone()))
	require.NoError(t, q.Send(ctx, event.WorkDone()))

	runCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	errs := make(chan error, 2)
	for id := 0; id < 2; id++ {
		go func(id int) { errs <- New(id, q, l).Run(runCtx) }(id)
	}
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	assert.Equal(t, 2, l.Len())
	assert.True(t, wantIdeas.Equal(l.IdeaChecksum()))
	assert.True(t, wantPkgs.Equal(l.PackageChecksum()))
	assert.Equal(t, 0, q.Len())
}

func TestStudent_Errors(t *testing.T) {
	t.Run("queue closed while waiting", func(t *testing.T) {
		s, q, _ := setupStudent(t)
		require.NoError(t, q.Close())

		err := s.Run(context.Background())
		assert.ErrorIs(t, err, queue.ErrClosed)
	})

	t.Run("queue closed while deferring", func(t *testing.T) {
		s, q, _ := setupStudent(t)
		handle(t, s, event.NewIdea(event.Idea{Name: "A for X", PackagesRequired: 1}))
		require.NoError(t, q.Close())

		_, err := s.Handle(context.Background(), event.WorkDone())
		assert.ErrorIs(t, err, queue.ErrClosed)
	})

	t.Run("malformed events", func(t *testing.T) {
		s, _, _ := setupStudent(t)
		_, err := s.Handle(context.Background(), event.Event{Kind: event.KindNewIdea})
		assert.ErrorIs(t, err, event.ErrInvalidEvent)

		_, err = s.Handle(context.Background(), event.Event{Kind: "bogus"})
		assert.ErrorIs(t, err, event.ErrInvalidEvent)
	})
}
