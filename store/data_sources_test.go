package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medkb/models"
)

func TestDataSourceRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ds := models.DataSource{
		Name:        "SÚKL",
		Description: "Státní ústav pro kontrolu léčiv",
		SourceType:  models.SourceTypeSUKL,
		URL:         "https://www.sukl.cz",
		APIEndpoint: "https://api.sukl.cz/v1",
		IsActive:    true,
	}
	require.NoError(t, st.CreateDataSource(ctx, &ds))
	require.NotZero(t, ds.ID)

	got, err := st.GetDataSource(ctx, ds.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SÚKL", got.Name)
	assert.Equal(t, models.SourceTypeSUKL, got.SourceType)
	assert.Equal(t, "https://api.sukl.cz/v1", got.APIEndpoint)
	assert.True(t, got.IsActive)
}

func TestGetDataSourceAbsentIsNotAnError(t *testing.T) {
	st := newTestStore(t)

	got, err := st.GetDataSource(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListDataSourcesNameOrderActiveOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, ds := range []models.DataSource{
		{Name: "WikiSkripta", SourceType: models.SourceTypeWikiskripta, IsActive: true},
		{Name: "NIKEZ", SourceType: models.SourceTypeNIKEZ, IsActive: true},
		{Name: "Stará databáze", SourceType: models.SourceTypeOther, IsActive: false},
	} {
		src := ds
		require.NoError(t, st.CreateDataSource(ctx, &src))
	}

	sources, err := st.ListDataSources(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "NIKEZ", sources[0].Name)
	assert.Equal(t, "WikiSkripta", sources[1].Name)
}

func TestCreateDataSourceInactiveRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ds := models.DataSource{Name: "Archiv", SourceType: models.SourceTypeOther, IsActive: false}
	require.NoError(t, st.CreateDataSource(ctx, &ds))

	got, err := st.GetDataSource(ctx, ds.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive, "explicit false survives the insert")

	sources, err := st.ListDataSources(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestUpdateDataSourcePartial(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ds := models.DataSource{Name: "NIKEZ", SourceType: models.SourceTypeNIKEZ, IsActive: true}
	require.NoError(t, st.CreateDataSource(ctx, &ds))

	require.NoError(t, st.UpdateDataSource(ctx, ds.ID, map[string]interface{}{
		"is_active": false,
	}))

	got, err := st.GetDataSource(ctx, ds.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
	assert.Equal(t, "NIKEZ", got.Name)
}
