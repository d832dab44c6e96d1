package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/repository"
)

func newMenuService(t *testing.T) (*MenuService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewMenuService(repository.NewEventRepository(db), newFakeStorage()), db
}

func seedEvent(t *testing.T, db *gorm.DB, name string, date time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		Name: name,
		Type: "dinner",
		Date: date,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestGetMenusByYearExample(t *testing.T) {
	svc, db := newMenuService(t)

	seedEvent(t, db, "Dinner 2020", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "Dinner 2021", time.Date(2021, 11, 25, 0, 0, 0, 0, time.UTC))

	menus, err := svc.GetMenusByYear(2020)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "Dinner 2020", menus[0].Name)
	assert.Equal(t, 2020, menus[0].Year)

	all, err := svc.GetAllMenus(models.MenuFilters{Sort: models.SortDesc})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2021, all[0].Year)
	assert.Equal(t, 2020, all[1].Year)
}

func TestYearWindowBoundaries(t *testing.T) {
	svc, db := newMenuService(t)

	seedEvent(t, db, "last moment", time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC))
	seedEvent(t, db, "first moment", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "next year", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "year before", time.Date(2019, 12, 31, 23, 59, 59, 0, time.UTC))

	menus, err := svc.GetMenusByYear(2020)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	for _, m := range menus {
		assert.Equal(t, 2020, m.Year)
	}
}

func TestSortDirectionsAreReverses(t *testing.T) {
	svc, db := newMenuService(t)

	for year := 2015; year <= 2020; year++ {
		seedEvent(t, db, "dinner", time.Date(year, 11, 20, 0, 0, 0, 0, time.UTC))
	}

	asc, err := svc.GetAllMenus(models.MenuFilters{Sort: models.SortAsc})
	require.NoError(t, err)
	desc, err := svc.GetAllMenus(models.MenuFilters{Sort: models.SortDesc})
	require.NoError(t, err)

	require.Equal(t, len(asc), len(desc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestDefaultSortIsDescending(t *testing.T) {
	svc, db := newMenuService(t)

	seedEvent(t, db, "old", time.Date(2018, 11, 22, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "new", time.Date(2022, 11, 24, 0, 0, 0, 0, time.UTC))

	menus, err := svc.GetAllMenus(models.MenuFilters{})
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, "new", menus[0].Name)
}

func TestPagination(t *testing.T) {
	svc, db := newMenuService(t)

	for year := 2010; year < 2020; year++ {
		seedEvent(t, db, "dinner", time.Date(year, 11, 20, 0, 0, 0, 0, time.UTC))
	}

	page, err := svc.GetAllMenus(models.MenuFilters{Sort: models.SortAsc, Limit: 3, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, 2012, page[0].Year)
	assert.Equal(t, 2014, page[2].Year)
}

func TestGetMenuByID(t *testing.T) {
	svc, db := newMenuService(t)

	event := seedEvent(t, db, "Dinner", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	menu, err := svc.GetMenuByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, menu.ID)

	_, err = svc.GetMenuByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMenuDerivesImageURL(t *testing.T) {
	svc, _ := newMenuService(t)

	menu, err := svc.CreateMenu(models.EventRequest{
		Name:          "Thanksgiving",
		Date:          "2020-11-26",
		MenuTitle:     "Menu 2020",
		MenuImageFile: "menu-2020.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 2020, menu.Year)
	assert.Equal(t, "/uploads/menus/menu-2020.jpg", menu.MenuImageURL)
}

func TestCreateMenuRejectsBadDate(t *testing.T) {
	svc, _ := newMenuService(t)

	_, err := svc.CreateMenu(models.EventRequest{Name: "x", Date: "not-a-date"})
	assert.Error(t, err)
}

func TestUpdateMenuPartial(t *testing.T) {
	svc, db := newMenuService(t)

	event := seedEvent(t, db, "Dinner", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	title := "New title"
	menu, err := svc.UpdateMenu(event.ID, models.UpdateEventRequest{MenuTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", menu.MenuTitle)
	assert.Equal(t, "Dinner", menu.Name)

	_, err = svc.UpdateMenu(9999, models.UpdateEventRequest{MenuTitle: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMenu(t *testing.T) {
	svc, db := newMenuService(t)

	event := seedEvent(t, db, "Dinner", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.DeleteMenu(event.ID))
	_, err := svc.GetMenuByID(event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteMenu(event.ID), ErrNotFound)
}

func TestGetMenuByIDSurfacesPhotoCountError(t *testing.T) {
	svc, db := newMenuService(t)

	event := seedEvent(t, db, "Dinner", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	require.NoError(t, db.Migrator().DropTable(&models.Photo{}))

	_, err := svc.GetMenuByID(event.ID)
	assert.Error(t, err)
}

func TestGetMenuStats(t *testing.T) {
	svc, db := newMenuService(t)

	stats, err := svc.GetMenuStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalEvents)
	assert.Empty(t, stats.Years)

	seedEvent(t, db, "a", time.Date(2019, 11, 28, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "b", time.Date(2021, 11, 25, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "c", time.Date(2021, 12, 25, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "d", time.Date(2016, 11, 24, 0, 0, 0, 0, time.UTC))

	stats, err = svc.GetMenuStats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalEvents)
	assert.Equal(t, []int{2016, 2019, 2021}, stats.Years)
	assert.Equal(t, 2016, stats.OldestYear)
	assert.Equal(t, 2021, stats.NewestYear)
}
