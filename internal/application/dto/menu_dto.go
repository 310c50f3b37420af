package dto

import "time"

// MenuItemRequest refeição de um dia na criação/edição de cardápio.
type MenuItemRequest struct {
	DayOfWeek   string `json:"day_of_week"`
	MealType    string `json:"meal_type"`
	MealName    string `json:"meal_name,omitempty"`
	PortionText string `json:"portion_text,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageData   string `json:"image_data,omitempty"`
	Description string `json:"description"`
}

// CreateMenuRequest body para POST /api/menus.
type CreateMenuRequest struct {
	SchoolID  string            `json:"school_id"`
	Name      string            `json:"name,omitempty"`
	WeekStart time.Time         `json:"week_start"`
	WeekEnd   time.Time         `json:"week_end"`
	Notes     string            `json:"notes,omitempty"`
	Items     []MenuItemRequest `json:"items"`
}

// UpdateMenuRequest body para PUT /api/menus/:id.
type UpdateMenuRequest struct {
	Name      *string           `json:"name,omitempty"`
	WeekStart *time.Time        `json:"week_start,omitempty"`
	WeekEnd   *time.Time        `json:"week_end,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
	Items     []MenuItemRequest `json:"items,omitempty"`
}

// MenuItemResponse refeição de um dia.
type MenuItemResponse struct {
	ID          string `json:"id"`
	DayOfWeek   string `json:"day_of_week"`
	MealType    string `json:"meal_type"`
	MealName    string `json:"meal_name,omitempty"`
	PortionText string `json:"portion_text,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageData   string `json:"image_data,omitempty"`
	Description string `json:"description"`
}

// MenuResponse representação de um cardápio semanal.
type MenuResponse struct {
	ID          string             `json:"id"`
	SchoolID    string             `json:"school_id"`
	Name        string             `json:"name,omitempty"`
	WeekStart   time.Time          `json:"week_start"`
	WeekEnd     time.Time          `json:"week_end"`
	Status      string             `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	PublishedAt *time.Time         `json:"published_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []MenuItemResponse `json:"items"`
}
