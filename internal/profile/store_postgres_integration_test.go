//go:build integration

package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"crosslink/internal/linkage"
	"crosslink/internal/profile"
	"crosslink/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *profile.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = profile.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "linkages", "profiles"))
}

func (s *PostgresStoreSuite) TestSaveRoundTrip() {
	ctx := context.Background()
	p := profile.Profile{
		ID:       "subject-1",
		Name:     "Ali Hassan",
		IMEIs:    profile.StringList{"352099001761481"},
		Hideouts: profile.StringList{"Warehouse X"},
		Org:      "Red Eagle",
		GPS:      "52.52,13.405",
		Associates: []profile.Associate{
			{Name: "Omar K", Phone: "555"},
		},
	}
	s.Require().NoError(s.store.Save(ctx, p))

	got, err := s.store.Get(ctx, "subject-1")
	s.Require().NoError(err)
	s.Equal("Ali Hassan", got.Name)
	s.Equal(profile.StringList{"352099001761481"}, got.IMEIs)
	s.Equal(profile.NamedValue("Red Eagle"), got.Org)
	s.Require().Len(got.Associates, 1)
	s.Equal("Omar K", got.Associates[0].Name)
}

func (s *PostgresStoreSuite) TestUpsertKeepsDerivedFields() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, profile.Profile{ID: "subject-1", Name: "Ali"}))
	s.Require().NoError(linkage.NewPostgresStore(s.postgres.DB).ReplaceAll(ctx, "run-1", nil, map[string]profile.Summary{
		"subject-1": {ProfileID: "subject-1", SuspicionScore: 90, LinkageCount: 1, SuspicionReasons: []string{"Same IMEI as Bekir"}},
	}))

	// A CRUD update must not clobber the engine-owned columns.
	s.Require().NoError(s.store.Save(ctx, profile.Profile{ID: "subject-1", Name: "Ali Hassan"}))

	got, err := s.store.Get(ctx, "subject-1")
	s.Require().NoError(err)
	s.Equal("Ali Hassan", got.Name)
	s.Equal(90, got.SuspicionScore)
	s.Equal(1, got.LinkageCount)
	s.Equal([]string{"Same IMEI as Bekir"}, got.SuspicionReasons)
}

func (s *PostgresStoreSuite) TestListOrderAndDelete() {
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		s.Require().NoError(s.store.Save(ctx, profile.Profile{ID: id, Name: id}))
	}

	got, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("a", got[0].ID)
	s.Equal("c", got[2].ID)

	s.Require().NoError(s.store.Delete(ctx, "b"))
	s.Require().ErrorIs(s.store.Delete(ctx, "b"), profile.ErrNotFound)
	_, err = s.store.Get(ctx, "b")
	s.Require().ErrorIs(err, profile.ErrNotFound)
}
