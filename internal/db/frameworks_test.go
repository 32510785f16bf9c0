package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhofwell/agent-augments/internal/models"
)

func TestCreateAndGetFramework(t *testing.T) {
	db := testDB(t)

	fw := models.Framework{
		Slug:      "superclaude",
		Name:      "SuperClaude",
		GithubURL: "https://github.com/x/superclaude",
		IsActive:  true,
		SortOrder: 1,
		Stars:     5000,
	}
	require.NoError(t, db.CreateFramework(&fw))
	assert.NotEmpty(t, fw.ID)

	got, err := db.GetFrameworkBySlug("superclaude")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fw.ID, got.ID)

	missing, err := db.GetFrameworkBySlug("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateFrameworkDuplicateSlug(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateFramework(&models.Framework{Slug: "dup", Name: "A"}))
	assert.Error(t, db.CreateFramework(&models.Framework{Slug: "dup", Name: "B"}))
}

func TestListActiveFrameworksOrder(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateFramework(&models.Framework{Slug: "b", Name: "B", IsActive: true, SortOrder: 2}))
	require.NoError(t, db.CreateFramework(&models.Framework{Slug: "a", Name: "A", IsActive: true, SortOrder: 1}))
	require.NoError(t, db.CreateFramework(&models.Framework{Slug: "c", Name: "C", IsActive: false, SortOrder: 3}))

	active, err := db.ListActiveFrameworks()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Slug)
	assert.Equal(t, "b", active[1].Slug)
}

func TestMaxFrameworkSortOrder(t *testing.T) {
	db := testDB(t)

	max, err := db.MaxFrameworkSortOrder()
	require.NoError(t, err)
	assert.Equal(t, 0, max, "empty table yields zero")

	require.NoError(t, db.CreateFramework(&models.Framework{Slug: "a", Name: "A", SortOrder: 7}))
	require.NoError(t, db.CreateFramework(&models.Framework{Slug: "b", Name: "B", SortOrder: 3}))

	max, err = db.MaxFrameworkSortOrder()
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestUpdateFrameworkStars(t *testing.T) {
	db := testDB(t)

	fw := models.Framework{Slug: "a", Name: "A", Stars: 100}
	require.NoError(t, db.CreateFramework(&fw))

	require.NoError(t, db.UpdateFrameworkStars(fw.ID, 250))

	got, err := db.GetFramework(fw.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, got.Stars)
}
