package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "plutus/internal/errors"
	"plutus/internal/models"
	"plutus/internal/pagination"
)

// profitLogService handles profit log business logic.
type profitLogService struct {
	db *gorm.DB
}

// NewProfitLogService creates a new ProfitLogServicer.
func NewProfitLogService(db *gorm.DB) ProfitLogServicer {
	return &profitLogService{db: db}
}

// CreateProfitLog records a point-in-time value observation for an asset class.
func (s *profitLogService) CreateProfitLog(userID string, assetType models.AssetType, value float64, date time.Time) (*models.ProfitLog, error) {
	log := &models.ProfitLog{
		UserID:    userID,
		AssetType: assetType,
		Value:     value,
		Date:      date,
	}

	if err := s.db.Create(log).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return log, nil
}

// GetUserProfitLogs returns paginated profit logs for a user, optionally
// bounded by a date range, ordered by date ascending.
func (s *profitLogService) GetUserProfitLogs(userID string, from, to *time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.ProfitLog], error) {
	page.Defaults()

	base := s.db.Model(&models.ProfitLog{}).Where("user_id = ?", userID)
	if from != nil {
		base = base.Where("date >= ?", *from)
	}
	if to != nil {
		base = base.Where("date <= ?", *to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.ProfitLog
	if err := base.Order("date ASC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteProfitLog removes a profit log entry owned by the user.
func (s *profitLogService) DeleteProfitLog(userID, logID string) error {
	var log models.ProfitLog
	if err := s.db.First(&log, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProfitLogNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if log.UserID != userID {
		return apperrors.ErrProfitLogNotFound
	}

	if err := s.db.Delete(&log).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
