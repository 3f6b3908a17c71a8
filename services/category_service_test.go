package services

import (
	"context"
	"testing"

	"tapr/entity"
	"tapr/repository"
	"tapr/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const demoVenue = "copper-head-beer-workshop"

func newCategoryService(db *gorm.DB) *CategoryService {
	return NewCategoryService(repository.NewCategoryRepository(db), repository.NewMenuRepository(db), newVenueService(db))
}

func sectionNames(sections []MenuSection) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Name)
	}
	return out
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Non-alcoholic":   "non-alcoholic",
		"  Fish & Chips ": "fish-chips",
		"Beer 2.0":        "beer-2-0",
		"پیش‌غذا":         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCategoryService_Sections(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedDemo(t, db)
	testutil.CreateMenuItem(t, db, entity.MenuItem{VenueID: "v1", Name: "Pretzel", Price: 5, Category: "Snacks", IsAvailable: true})
	testutil.CreateMenuItem(t, db, entity.MenuItem{VenueID: "v1", Name: "Old Stout", Price: 5, Category: "Beer", IsAvailable: false})
	svc := newCategoryService(db)

	sections, err := svc.Sections(context.Background(), demoVenue)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beer", "Cocktail", "Main", "Non-alcoholic", "Snacks", "Starter"}, sectionNames(sections))

	byName := map[string]MenuSection{}
	for _, s := range sections {
		byName[s.Name] = s
	}

	mainCourse := byName["Main"]
	assert.NotEmpty(t, mainCourse.ID)
	assert.Equal(t, "main", mainCourse.Slug)
	assert.Equal(t, "غذای اصلی", mainCourse.NameFa)
	require.Len(t, mainCourse.Items, 2)
	assert.Equal(t, "Copper Burger", mainCourse.Items[0].Name)
	assert.Equal(t, "Fish & Chips", mainCourse.Items[1].Name)

	require.Len(t, byName["Beer"].Items, 1, "unavailable items are hidden")

	snacks := byName["Snacks"]
	assert.Empty(t, snacks.ID)
	assert.Equal(t, "snacks", snacks.Slug)
	require.Len(t, snacks.Items, 1)

	_, err = svc.Sections(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCategoryService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedDemo(t, db)
	testutil.CreateVenue(t, db, entity.Venue{Slug: "bean-there"})
	svc := newCategoryService(db)
	ctx := context.Background()

	dessert, err := svc.Create(ctx, demoVenue, CategoryInput{Name: "Dessert", NameFa: "دسر"})
	require.NoError(t, err)
	assert.Equal(t, "dessert", dessert.Slug)
	assert.Equal(t, "v1", dessert.VenueID)

	sections, err := svc.Sections(ctx, demoVenue)
	require.NoError(t, err)
	for _, s := range sections {
		if s.Name == "Dessert" {
			assert.NotNil(t, s.Items)
			assert.Empty(t, s.Items)
		}
	}

	_, err = svc.Create(ctx, demoVenue, CategoryInput{Name: "Dessert!"})
	assert.ErrorIs(t, err, ErrCategoryTaken)

	// slugs are unique per venue only
	_, err = svc.Create(ctx, "bean-there", CategoryInput{Name: "Dessert"})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, demoVenue, CategoryInput{Name: "پیش‌غذا"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	fa, err := svc.Create(ctx, demoVenue, CategoryInput{Name: "پیش‌غذا", Slug: "appetizers"})
	require.NoError(t, err)
	assert.Equal(t, "appetizers", fa.Slug)

	_, err = svc.Create(ctx, "missing", CategoryInput{Name: "Dessert"})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCategoryService_DeleteKeepsItems(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedDemo(t, db)
	svc := newCategoryService(db)
	ctx := context.Background()

	var beer entity.MenuCategory
	require.NoError(t, db.Where("venue_id = ? AND slug = ?", "v1", "beer").First(&beer).Error)

	require.NoError(t, svc.Delete(ctx, beer.ID))
	assert.ErrorIs(t, svc.Delete(ctx, beer.ID), ErrCategoryNotFound)

	sections, err := svc.Sections(ctx, demoVenue)
	require.NoError(t, err)
	require.Equal(t, "Beer", sections[0].Name)
	assert.Empty(t, sections[0].ID)
	assert.Len(t, sections[0].Items, 1)
}
