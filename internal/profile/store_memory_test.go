package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite

	ctx   context.Context
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
}

func (s *InMemoryStoreSuite) TestSaveAndGet() {
	s.Run("saves and finds a profile by id", func() {
		p := Profile{ID: "subject-1", Name: "Ali", IMEIs: StringList{"111"}}
		s.Require().NoError(s.store.Save(s.ctx, p))

		got, err := s.store.Get(s.ctx, "subject-1")
		s.Require().NoError(err)
		s.Equal("Ali", got.Name)
		s.Equal(StringList{"111"}, got.IMEIs)
		s.False(got.CreatedAt.IsZero())
		s.False(got.UpdatedAt.IsZero())
	})

	s.Run("updating keeps the creation time", func() {
		s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "subject-1", Name: "Ali"}))
		first, err := s.store.Get(s.ctx, "subject-1")
		s.Require().NoError(err)

		s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "subject-1", Name: "Ali Hassan"}))
		second, err := s.store.Get(s.ctx, "subject-1")
		s.Require().NoError(err)
		s.Equal("Ali Hassan", second.Name)
		s.Equal(first.CreatedAt, second.CreatedAt)
	})

	s.Run("updating keeps the engine-owned fields", func() {
		s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "subject-2", Name: "Bekir"}))
		s.Require().NoError(s.store.ReplaceSummaries(s.ctx, map[string]Summary{
			"subject-2": {ProfileID: "subject-2", SuspicionScore: 90, LinkageCount: 1, SuspicionReasons: []string{"Same IMEI as Ali"}},
		}))

		s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "subject-2", Name: "Bekir K"}))
		got, err := s.store.Get(s.ctx, "subject-2")
		s.Require().NoError(err)
		s.Equal("Bekir K", got.Name)
		s.Equal(90, got.SuspicionScore)
		s.Equal(1, got.LinkageCount)
		s.Equal([]string{"Same IMEI as Ali"}, got.SuspicionReasons)
	})

	s.Run("missing profile is not found", func() {
		_, err := s.store.Get(s.ctx, "ghost")
		s.Require().ErrorIs(err, ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestListIsSortedByID() {
	for _, id := range []string{"c", "a", "b"} {
		s.Require().NoError(s.store.Save(s.ctx, Profile{ID: id, Name: id}))
	}

	got, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("a", got[0].ID)
	s.Equal("b", got[1].ID)
	s.Equal("c", got[2].ID)
}

func (s *InMemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "subject-1", Name: "Ali"}))
	s.Require().NoError(s.store.Delete(s.ctx, "subject-1"))

	_, err := s.store.Get(s.ctx, "subject-1")
	s.Require().ErrorIs(err, ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, "subject-1"), ErrNotFound)
}

func (s *InMemoryStoreSuite) TestReplaceSummaries() {
	s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "a", Name: "Ali"}))
	s.Require().NoError(s.store.Save(s.ctx, Profile{ID: "b", Name: "Bekir"}))

	s.Require().NoError(s.store.ReplaceSummaries(s.ctx, map[string]Summary{
		"a": {ProfileID: "a", SuspicionScore: 90, LinkageCount: 1, SuspicionReasons: []string{"Same IMEI as Bekir"}},
	}))

	a, err := s.store.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(90, a.SuspicionScore)
	s.Equal(1, a.LinkageCount)
	s.Equal([]string{"Same IMEI as Bekir"}, a.SuspicionReasons)

	// Profiles absent from the map are reset so stale evidence cannot linger.
	s.Require().NoError(s.store.ReplaceSummaries(s.ctx, map[string]Summary{}))
	a, err = s.store.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(0, a.SuspicionScore)
	s.Equal(0, a.LinkageCount)
	s.Empty(a.SuspicionReasons)
}
