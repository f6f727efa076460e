package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajun-local/ask-local/api/internal/infrastructure/postgres"
)

func TestSeedIDIsStable(t *testing.T) {
	assert.Equal(t, seedID("business/bayou-bistro"), seedID("business/bayou-bistro"))
	assert.NotEqual(t, seedID("business/bayou-bistro"), seedID("business/boudin-king"))
}

func TestDemoDatasetReferencesResolve(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	data := demoDataset(now, "member-1")

	businesses := map[string]bool{}
	for _, b := range data.Businesses {
		businesses[b.Key] = true
		_, ok := data.Categories[b.Category]
		assert.True(t, ok, "category %s", b.Category)
	}
	for _, h := range data.Hours {
		assert.True(t, businesses[h.Business], h.Business)
	}
	for _, e := range data.Events {
		assert.True(t, businesses[e.Business], e.Business)
	}
	for _, a := range data.Ads {
		assert.True(t, businesses[a.Business], a.Business)
	}
	plans := map[string]bool{}
	for _, p := range data.Plans {
		plans[p.Key] = true
	}
	for _, s := range data.Subscriptions {
		assert.True(t, plans[s.Plan], s.Plan)
	}
	assert.Equal(t, "member-1", data.UserID)
}

func TestRowBuildersCoverEveryCollection(t *testing.T) {
	data := demoDataset(time.Now(), "member-1")

	rows := postgresRows(data)
	assert.Len(t, rows, len(postgres.AllModels()))

	batches := mongoBatches(data)
	require.Len(t, batches, len(postgres.AllModels()))
	for _, b := range batches {
		assert.NotEmpty(t, b.docs, b.collection)
	}
}
