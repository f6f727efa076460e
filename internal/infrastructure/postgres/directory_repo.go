package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

const (
	statusApproved = "approved"
	statusActive   = "active"
)

// DirectoryRepository implements application.DirectoryRepository with gorm.
type DirectoryRepository struct {
	DB *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{DB: db}
}

func (r *DirectoryRepository) ApprovedBusinesses(ctx context.Context) ([]domain.Business, error) {
	var rows []BusinessModel
	if err := r.DB.WithContext(ctx).Where("status = ?", statusApproved).Find(&rows).Error; err != nil {
		return nil, err
	}
	businesses := make([]domain.Business, len(rows))
	for i, row := range rows {
		businesses[i] = toDomainBusiness(row)
	}
	return businesses, nil
}

func (r *DirectoryRepository) RegionMemberships(ctx context.Context, businessIDs []string) ([]domain.RegionMembership, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	var rows []BusinessParishModel
	if err := r.DB.WithContext(ctx).Where("business_id IN ?", businessIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	memberships := make([]domain.RegionMembership, len(rows))
	for i, row := range rows {
		memberships[i] = domain.RegionMembership{BusinessID: row.BusinessID, RegionID: row.ParishID}
	}
	return memberships, nil
}

func (r *DirectoryRepository) Categories(ctx context.Context, ids []string) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []CategoryModel
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = domain.Category{ID: row.ID, Name: row.Name}
	}
	return categories, nil
}

func (r *DirectoryRepository) Hours(ctx context.Context, businessIDs []string) ([]domain.HoursEntry, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	var rows []HoursModel
	if err := r.DB.WithContext(ctx).Where("business_id IN ?", businessIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	hours := make([]domain.HoursEntry, len(rows))
	for i, row := range rows {
		hours[i] = domain.HoursEntry{
			BusinessID: row.BusinessID,
			DayOfWeek:  row.DayOfWeek,
			OpenTime:   deref(row.OpenTime),
			CloseTime:  deref(row.CloseTime),
			IsClosed:   row.IsClosed,
		}
	}
	return hours, nil
}

func (r *DirectoryRepository) MenuSections(ctx context.Context, businessIDs []string) ([]domain.MenuSection, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	var rows []MenuSectionModel
	if err := r.DB.WithContext(ctx).Where("business_id IN ?", businessIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	sections := make([]domain.MenuSection, len(rows))
	for i, row := range rows {
		sections[i] = domain.MenuSection{ID: row.ID, BusinessID: row.BusinessID, Name: row.Name, SortOrder: row.SortOrder}
	}
	return sections, nil
}

func (r *DirectoryRepository) MenuItems(ctx context.Context, sectionIDs []string) ([]domain.MenuItem, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}
	var rows []MenuItemModel
	if err := r.DB.WithContext(ctx).Where("section_id IN ?", sectionIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = domain.MenuItem{SectionID: row.SectionID, Name: row.Name, Price: row.Price, IsAvailable: row.IsAvailable}
	}
	return items, nil
}

func (r *DirectoryRepository) ActiveDeals(ctx context.Context, businessIDs []string) ([]domain.Deal, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	var rows []DealModel
	err := r.DB.WithContext(ctx).
		Where("business_id IN ? AND status = ? AND is_active = ?", businessIDs, statusApproved, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	deals := make([]domain.Deal, len(rows))
	for i, row := range rows {
		deals[i] = domain.Deal{
			BusinessID:  row.BusinessID,
			Title:       row.Title,
			Description: deref(row.Description),
			DealType:    deref(row.DealType),
		}
	}
	return deals, nil
}

func (r *DirectoryRepository) ApprovedReviews(ctx context.Context, businessIDs []string) ([]domain.Review, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	var rows []ReviewModel
	err := r.DB.WithContext(ctx).
		Select("business_id", "rating").
		Where("business_id IN ? AND status = ?", businessIDs, statusApproved).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, len(rows))
	for i, row := range rows {
		reviews[i] = domain.Review{BusinessID: row.BusinessID, Rating: row.Rating}
	}
	return reviews, nil
}

// UpcomingEvents returns approved events dated on or after from, earliest first.
func (r *DirectoryRepository) UpcomingEvents(ctx context.Context, businessIDs []string, from time.Time) ([]domain.Event, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	var rows []EventModel
	err := r.DB.WithContext(ctx).
		Where("business_id IN ? AND status = ? AND event_date >= ?", businessIDs, statusApproved, from.UTC()).
		Order("event_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = domain.Event{
			BusinessID:  row.BusinessID,
			Title:       row.Title,
			Description: deref(row.Description),
			EventDate:   row.EventDate,
		}
	}
	return events, nil
}

func toDomainBusiness(row BusinessModel) domain.Business {
	return domain.Business{
		ID:          row.ID,
		Name:        row.Name,
		Description: deref(row.Description),
		City:        deref(row.City),
		State:       deref(row.State),
		Region:      deref(row.Parish),
		Address:     deref(row.Address),
		Zip:         deref(row.Zip),
		Phone:       deref(row.Phone),
		Website:     deref(row.Website),
		Email:       deref(row.Email),
		CategoryID:  deref(row.CategoryID),
	}
}
