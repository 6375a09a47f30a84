package domain

import (
	"PetDiary/pkg/ledger"
	"errors"
	"time"
)

var (
	MessageSuccessRecordIntake   = "feeding recorded successfully"
	MessageSuccessRecordLeftover = "leftover deducted successfully"
	MessageSuccessGetLogs        = "diet logs retrieved successfully"
	MessageSuccessGetReport      = "daily report retrieved successfully"
	MessageSuccessGetLastMeal    = "last meal located successfully"
	MessageSuccessMailExport     = "export mailed successfully"

	MessageFailedRecordIntake   = "failed to record feeding"
	MessageFailedRecordLeftover = "failed to record leftover"
	MessageFailedGetLogs        = "failed to retrieve diet logs"
	MessageFailedGetReport      = "failed to compute daily report"
	MessageFailedGetLastMeal    = "no recent feeding found, record a feeding first"
	MessageFailedExport         = "failed to export diet logs"

	ErrFoodNotInMenu  = errors.New("food is not on the pet's menu")
	ErrNoLogsToExport = errors.New("no diet logs to export")
)

type (
	RecordIntakeRequest struct {
		FoodID   string  `json:"food_id" validate:"required,uuid"`
		MealName string  `json:"meal_name" validate:"required,max=50"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Date     string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	}

	RecordLeftoverRequest struct {
		MealName string  `json:"meal_name" validate:"required,max=50"`
		Weight   float64 `json:"weight" validate:"required,gt=0"`
		Date     string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	}

	DietLogResponse struct {
		ID        string    `json:"id"`
		Timestamp time.Time `json:"timestamp"`
		DateStr   string    `json:"date_str"`
		MealName  string    `json:"meal_name"`
		FoodName  string    `json:"food_name"`
		NetWeight float64   `json:"net_weight"`
		Calories  float64   `json:"calories"`
		Protein   float64   `json:"protein"`
		Fat       float64   `json:"fat"`
		Phos      float64   `json:"phos"`
		LogType   string    `json:"log_type"`
	}

	LastMealResponse struct {
		ledger.Density
		CaloriesPer100g float64 `json:"calories_100g"`
	}

	// ReportDisplay holds the rendered totals; zero renders as "-".
	ReportDisplay struct {
		NetCalories   string `json:"net_calories"`
		InputMass     string `json:"input_mass"`
		EatenMass     string `json:"eaten_mass"`
		Water         string `json:"water"`
		NetProtein    string `json:"net_protein"`
		NetFat        string `json:"net_fat"`
		NetPhosphorus string `json:"net_phosphorus"`
	}

	DailyReportResponse struct {
		Totals  ledger.DailyTotals `json:"totals"`
		Display ReportDisplay      `json:"display"`
	}

	MailExportRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)
