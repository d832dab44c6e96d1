package service

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/repository"
	"github.com/tkaraca/menubook-backend/pkg/storage"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

// Menu images live under this storage prefix; uploaded photos use events/<id>/.
const menuImagePrefix = "menus/"

// MenuService translates listing filters into event queries and shapes the
// menu projection (display URL, year, photo count) on the way out.
type MenuService struct {
	eventRepo *repository.EventRepository
	storage   storage.Storage
}

func NewMenuService(eventRepo *repository.EventRepository, storage storage.Storage) *MenuService {
	return &MenuService{
		eventRepo: eventRepo,
		storage:   storage,
	}
}

func (s *MenuService) toResponse(event *models.Event) (*models.MenuResponse, error) {
	resp := &models.MenuResponse{
		ID:          event.ID,
		Name:        event.Name,
		Type:        event.Type,
		Location:    event.Location,
		Date:        event.Date,
		Year:        event.Date.UTC().Year(),
		Description: event.Description,
		MenuTitle:   event.MenuTitle,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
	if event.MenuImageFile != "" {
		resp.MenuImageURL = s.storage.PublicURL(menuImagePrefix + event.MenuImageFile)
	}

	count, err := s.eventRepo.PhotoCount(event.ID)
	if err != nil {
		return nil, err
	}
	resp.PhotoCount = int(count)
	return resp, nil
}

// GetAllMenus returns menus ordered by date (default descending), optionally
// filtered to one calendar year and paginated.
func (s *MenuService) GetAllMenus(filters models.MenuFilters) ([]models.MenuResponse, error) {
	events, err := s.eventRepo.List(filters)
	if err != nil {
		return nil, err
	}

	menus := make([]models.MenuResponse, 0, len(events))
	for i := range events {
		menu, err := s.toResponse(&events[i])
		if err != nil {
			return nil, err
		}
		menus = append(menus, *menu)
	}
	return menus, nil
}

func (s *MenuService) GetMenuByID(id uint) (*models.MenuResponse, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.toResponse(event)
}

func (s *MenuService) GetMenusByYear(year int) ([]models.MenuResponse, error) {
	return s.GetAllMenus(models.MenuFilters{Year: year})
}

func (s *MenuService) CreateMenu(req models.EventRequest) (*models.MenuResponse, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:          req.Name,
		Type:          req.Type,
		Location:      req.Location,
		Date:          date,
		Description:   req.Description,
		MenuTitle:     req.MenuTitle,
		MenuImageFile: req.MenuImageFile,
	}

	created, err := s.eventRepo.Create(event)
	if err != nil {
		return nil, err
	}
	return s.toResponse(created)
}

func (s *MenuService) UpdateMenu(id uint, req models.UpdateEventRequest) (*models.MenuResponse, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.MenuTitle != nil {
		event.MenuTitle = *req.MenuTitle
	}
	if req.MenuImageFile != nil {
		event.MenuImageFile = *req.MenuImageFile
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return s.toResponse(event)
}

func (s *MenuService) DeleteMenu(id uint) error {
	if _, err := s.eventRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Photos cascade with the event row.
	return s.eventRepo.Delete(id)
}

// GetMenuStats reports the total count plus the distinct, ascending set of
// years present and the newest/oldest of them.
func (s *MenuService) GetMenuStats() (*models.MenuStats, error) {
	count, err := s.eventRepo.Count()
	if err != nil {
		return nil, err
	}

	dates, err := s.eventRepo.Dates()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(dates))
	years := make([]int, 0, len(dates))
	for _, d := range dates {
		y := d.UTC().Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)

	stats := &models.MenuStats{
		TotalEvents: int(count),
		Years:       years,
	}
	if len(years) > 0 {
		stats.OldestYear = years[0]
		stats.NewestYear = years[len(years)-1]
	}
	return stats, nil
}
