package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

func TestNewRegionSet(t *testing.T) {
	set := NewRegionSet([]string{" 12 ", "", "  ", "7"})
	assert.Len(t, set, 2)
	assert.True(t, set.Has("12"))
	assert.True(t, set.Has("7"))
	assert.False(t, set.Has(""))
}

func TestAssemblerLoadBusinessesRegionFilter(t *testing.T) {
	repo := &fakeDirectory{
		businesses: []domain.Business{
			{ID: "b1", Name: "Primary match", Region: " r1 "},
			{ID: "b2", Name: "Membership match", Region: "r9"},
			{ID: "b3", Name: "No match", Region: "r9"},
			{ID: "b4", Name: "No region"},
		},
		memberships: []domain.RegionMembership{
			{BusinessID: "b2", RegionID: "r2"},
			{BusinessID: "b3", RegionID: "r8"},
		},
	}
	assembler := NewAssembler(repo, fixedNow, nil, nil)

	got, err := assembler.LoadBusinesses(context.Background(), NewRegionSet([]string{"r1", "r2"}))
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"b1", "b2"}, ids)
}

func TestAssemblerLoadBusinessesWithoutRegions(t *testing.T) {
	repo := &fakeDirectory{businesses: []domain.Business{{ID: "b1"}, {ID: "b2"}}}
	got, err := NewAssembler(repo, fixedNow, nil, nil).LoadBusinesses(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Zero(t, repo.calls["memberships"], "memberships are only read when regions are requested")
}

func TestAssemblerLoadBusinessesFailure(t *testing.T) {
	repo := &fakeDirectory{errs: map[string]error{"businesses": errors.New("connection refused")}}
	_, err := NewAssembler(repo, fixedNow, nil, nil).LoadBusinesses(context.Background(), nil)
	assert.ErrorIs(t, err, ErrStore)
}

func TestAssemblerLoadRelated(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	repo := &fakeDirectory{
		categories: []domain.Category{{ID: "c1", Name: "Restaurants"}},
		sections: []domain.MenuSection{
			{ID: "s2", BusinessID: "b1", SortOrder: intPtr(2)},
			{ID: "s1", BusinessID: "b1", SortOrder: intPtr(1)},
		},
		items: []domain.MenuItem{
			{SectionID: "s2", Name: "Beignets"},
			{SectionID: "s1", Name: "Gumbo"},
		},
		reviews: []domain.Review{
			{BusinessID: "b1", Rating: 5},
			{BusinessID: "b1", Rating: 4},
			{BusinessID: "b1", Rating: 4},
		},
	}
	assembler := NewAssembler(repo, fixedNow, loc, nil)

	data, err := assembler.LoadRelated(context.Background(), []domain.Business{{ID: "b1", CategoryID: "c1"}})
	require.NoError(t, err)

	assert.Equal(t, "Restaurants", data.CategoryName("c1"))
	avg, ok := data.AverageRating("b1")
	assert.True(t, ok)
	assert.Equal(t, 4.3, avg)
	assert.Equal(t, "Gumbo, Beignets", formatMenu(data, "b1"))
	assert.Equal(t, time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC), repo.eventsFrom.UTC())
}

func TestAssemblerLoadRelatedFailure(t *testing.T) {
	repo := &fakeDirectory{errs: map[string]error{"deals": errors.New("timeout")}}
	_, err := NewAssembler(repo, fixedNow, nil, nil).LoadRelated(context.Background(), []domain.Business{{ID: "b1"}})
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorContains(t, err, "load deals")
}
