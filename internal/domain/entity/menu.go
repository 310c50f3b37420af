package entity

import "time"

// Status de publicação do cardápio semanal.
const (
	MenuStatusDraft     = "DRAFT"
	MenuStatusPublished = "PUBLISHED"
)

// Dias e refeições do cardápio.
const (
	DayMon = "MON"
	DayTue = "TUE"
	DayWed = "WED"
	DayThu = "THU"
	DayFri = "FRI"

	MealBreakfast1   = "BREAKFAST1"
	MealSnack1       = "SNACK1"
	MealLunch        = "LUNCH"
	MealSnack2       = "SNACK2"
	MealBreakfast2   = "BREAKFAST2"
	MealDinnerCoffee = "DINNER_COFFEE"
)

// Menu é o cardápio semanal de uma escola. Único por (escola, week_start).
type Menu struct {
	ID          string
	SchoolID    string
	Name        string
	WeekStart   time.Time
	WeekEnd     time.Time
	Status      string
	Notes       string
	CreatedBy   string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []MenuItem
}

// MenuItem é uma refeição de um dia do cardápio.
type MenuItem struct {
	ID          string
	MenuID      string
	DayOfWeek   string
	MealType    string
	MealName    string
	PortionText string
	ImageURL    string
	ImageData   string
	Description string
	CreatedAt   time.Time
}
