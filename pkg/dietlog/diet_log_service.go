package dietlog

import (
	"PetDiary/domain"
	"PetDiary/entities"
	"PetDiary/internal/utils/export"
	"PetDiary/internal/utils/mailing"
	"PetDiary/pkg/food"
	"PetDiary/pkg/ledger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	DietLogService interface {
		RecordIntake(ctx context.Context, petID string, req domain.RecordIntakeRequest) (domain.DietLogResponse, error)
		RecordLeftover(ctx context.Context, petID string, req domain.RecordLeftoverRequest) (domain.DietLogResponse, error)
		GetDailyLogs(ctx context.Context, petID string, date string) ([]domain.DietLogResponse, error)
		DailyReport(ctx context.Context, petID string, date string) (domain.DailyReportResponse, error)
		LastMeal(ctx context.Context, petID string) (domain.LastMealResponse, error)
		ExportCSV(ctx context.Context, petID string) ([]byte, string, error)
		MailExport(ctx context.Context, petID string, req domain.MailExportRequest) error
	}

	dietLogService struct {
		dietLogRepository DietLogRepository
		foodRepository    food.FoodRepository
		pets              food.PetLookup
		aggregator        *ledger.DailyAggregator
		resolver          *ledger.DensityResolver
		mailer            mailing.Mailer
		location          *time.Location
		logger            *zap.Logger
		now               func() time.Time
	}
)

func NewDietLogService(
	dietLogRepository DietLogRepository,
	foodRepository food.FoodRepository,
	pets food.PetLookup,
	mailer mailing.Mailer,
	location *time.Location,
	logger *zap.Logger,
) DietLogService {
	if location == nil {
		location = time.Local
	}
	return &dietLogService{
		dietLogRepository: dietLogRepository,
		foodRepository:    foodRepository,
		pets:              pets,
		aggregator:        ledger.NewDailyAggregator(dietLogRepository, foodRepository, location, logger),
		resolver:          ledger.NewDensityResolver(dietLogRepository, foodRepository, logger),
		mailer:            mailer,
		location:          location,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *dietLogService) RecordIntake(ctx context.Context, petID string, req domain.RecordIntakeRequest) (domain.DietLogResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	at, err := s.entryTime(req.Date)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	item, err := s.foodRepository.GetFoodByID(ctx, req.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DietLogResponse{}, domain.ErrFoodNotFound
		}
		return domain.DietLogResponse{}, err
	}

	onMenu, err := s.foodRepository.IsOnMenu(ctx, pet.ID, item.ID)
	if err != nil {
		return domain.DietLogResponse{}, err
	}
	if !onMenu {
		return domain.DietLogResponse{}, domain.ErrFoodNotInMenu
	}

	entry, err := ledger.NewIntakeEntry(pet.ID, *item, req.Quantity, req.MealName, at)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	if err := s.dietLogRepository.AppendEntries(ctx, entry); err != nil {
		return domain.DietLogResponse{}, fmt.Errorf("append intake entry: %w", err)
	}

	s.logger.Info("intake recorded",
		zap.String("pet_id", pet.ID.String()),
		zap.String("food", entry.FoodName),
		zap.Float64("net_weight", entry.NetWeight),
		zap.Float64("calories", entry.Calories))
	return toDietLogResponse(entry), nil
}

// RecordLeftover deducts weight grams priced at the density of the pet's most
// recent meal. Nothing is written when no meal can be resolved.
func (s *dietLogService) RecordLeftover(ctx context.Context, petID string, req domain.RecordLeftoverRequest) (domain.DietLogResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	at, err := s.entryTime(req.Date)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	density, err := s.resolver.Resolve(ctx, pet.ID)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	entry, err := ledger.NewLeftoverEntry(pet.ID, density, req.Weight, req.MealName, at)
	if err != nil {
		return domain.DietLogResponse{}, err
	}

	if err := s.dietLogRepository.AppendEntries(ctx, entry); err != nil {
		return domain.DietLogResponse{}, fmt.Errorf("append leftover entry: %w", err)
	}

	s.logger.Info("leftover recorded",
		zap.String("pet_id", pet.ID.String()),
		zap.String("priced_from", density.Label),
		zap.Float64("net_weight", entry.NetWeight),
		zap.Float64("calories", entry.Calories))
	return toDietLogResponse(entry), nil
}

func (s *dietLogService) GetDailyLogs(ctx context.Context, petID string, date string) ([]domain.DietLogResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	from, to := ledger.DayBounds(day, s.location)
	logs, err := s.dietLogRepository.FetchEntries(ctx, pet.ID, from, to)
	if err != nil {
		return nil, err
	}

	response := make([]domain.DietLogResponse, 0, len(logs))
	for _, l := range logs {
		response = append(response, toDietLogResponse(l))
	}
	return response, nil
}

func (s *dietLogService) DailyReport(ctx context.Context, petID string, date string) (domain.DailyReportResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return domain.DailyReportResponse{}, err
	}

	day, err := s.parseDate(date)
	if err != nil {
		return domain.DailyReportResponse{}, err
	}

	totals, err := s.aggregator.Aggregate(ctx, pet.ID, day)
	if err != nil {
		return domain.DailyReportResponse{Totals: totals}, err
	}

	return domain.DailyReportResponse{
		Totals:  totals,
		Display: renderTotals(totals),
	}, nil
}

func (s *dietLogService) LastMeal(ctx context.Context, petID string) (domain.LastMealResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return domain.LastMealResponse{}, err
	}

	density, err := s.resolver.Resolve(ctx, pet.ID)
	if err != nil {
		return domain.LastMealResponse{}, err
	}

	return domain.LastMealResponse{
		Density:         density,
		CaloriesPer100g: density.Calories * 100,
	}, nil
}

// ExportCSV returns the pet's whole diary as CSV and a download file name.
func (s *dietLogService) ExportCSV(ctx context.Context, petID string) ([]byte, string, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return nil, "", err
	}

	logs, err := s.dietLogRepository.GetAllLogs(ctx, pet.ID)
	if err != nil {
		return nil, "", err
	}
	if len(logs) == 0 {
		return nil, "", domain.ErrNoLogsToExport
	}

	content, err := export.DietLogsCSV(logs, s.location)
	if err != nil {
		return nil, "", err
	}
	return content, export.FileName(pet.Name), nil
}

func (s *dietLogService) MailExport(ctx context.Context, petID string, req domain.MailExportRequest) error {
	content, fileName, err := s.ExportCSV(ctx, petID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("飲食紀錄匯出 %s", fileName)
	body := fmt.Sprintf("<p>附件為 %s，匯出時間 %s。</p>", fileName, s.now().In(s.location).Format("2006-01-02 15:04"))
	if err := s.mailer.SendMail(req.Email, subject, body, mailing.Attachment{Name: fileName, Content: content}); err != nil {
		s.logger.Error("mail export failed", zap.String("pet_id", petID), zap.Error(err))
		return err
	}

	s.logger.Info("export mailed", zap.String("pet_id", petID), zap.String("to", req.Email))
	return nil
}

func (s *dietLogService) findPet(ctx context.Context, petID string) (*entities.Pet, error) {
	if _, err := uuid.Parse(petID); err != nil {
		return nil, domain.ErrParseUUID
	}
	pet, err := s.pets.GetPetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

// parseDate reads a YYYY-MM-DD calendar date in the diary's zone. Empty
// means today.
func (s *dietLogService) parseDate(date string) (time.Time, error) {
	if date == "" {
		return s.now().In(s.location), nil
	}
	day, err := time.ParseInLocation(domain.DateLayout, date, s.location)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return day, nil
}

// entryTime stamps an entry on the chosen date with the current clock time.
func (s *dietLogService) entryTime(date string) (time.Time, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	now := s.now().In(s.location)
	return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, s.location), nil
}

func renderTotals(t ledger.DailyTotals) domain.ReportDisplay {
	return domain.ReportDisplay{
		NetCalories:   formatMetric(t.NetCalories, "kcal"),
		InputMass:     formatMetric(t.InputMass, "g"),
		EatenMass:     formatMetric(t.EatenMass, "g"),
		Water:         formatMetric(t.Water, "ml"),
		NetProtein:    formatMetric(t.NetProtein, "g"),
		NetFat:        formatMetric(t.NetFat, "g"),
		NetPhosphorus: formatMetric(t.NetPhosphorus, "mg"),
	}
}

func formatMetric(val float64, unit string) string {
	if val <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f %s", val, unit)
}

func toDietLogResponse(l entities.DietLog) domain.DietLogResponse {
	return domain.DietLogResponse{
		ID:        l.ID.String(),
		Timestamp: l.LoggedAt,
		DateStr:   l.DateStr,
		MealName:  l.MealName,
		FoodName:  l.FoodName,
		NetWeight: l.NetWeight,
		Calories:  l.Calories,
		Protein:   l.Protein,
		Fat:       l.Fat,
		Phos:      l.Phos,
		LogType:   string(l.LogType),
	}
}
