package postgres

import "time"

// BusinessModel mirrors the businesses table. Nullable text columns are pointers.
type BusinessModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description *string
	City        *string
	State       *string
	Parish      *string `gorm:"index"`
	Address     *string
	Zip         *string
	Phone       *string
	Website     *string
	Email       *string
	CategoryID  *string
	Status      string `gorm:"index"`
	CreatedAt   time.Time
}

func (BusinessModel) TableName() string { return "businesses" }

type CategoryModel struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func (CategoryModel) TableName() string { return "business_categories" }

type BusinessParishModel struct {
	BusinessID string `gorm:"primaryKey"`
	ParishID   string `gorm:"primaryKey"`
}

func (BusinessParishModel) TableName() string { return "business_parishes" }

type HoursModel struct {
	ID         uint   `gorm:"primaryKey"`
	BusinessID string `gorm:"index"`
	DayOfWeek  string
	OpenTime   *string
	CloseTime  *string
	IsClosed   bool
}

func (HoursModel) TableName() string { return "business_hours" }

type MenuSectionModel struct {
	ID         string `gorm:"primaryKey"`
	BusinessID string `gorm:"index"`
	Name       string
	SortOrder  *int
}

func (MenuSectionModel) TableName() string { return "menu_sections" }

type MenuItemModel struct {
	ID          string `gorm:"primaryKey"`
	SectionID   string `gorm:"index"`
	Name        string
	Price       *float64
	IsAvailable *bool
}

func (MenuItemModel) TableName() string { return "menu_items" }

type DealModel struct {
	ID          string `gorm:"primaryKey"`
	BusinessID  string `gorm:"index"`
	Title       string
	Description *string
	DealType    *string
	Status      string
	IsActive    bool
}

func (DealModel) TableName() string { return "deals" }

type ReviewModel struct {
	ID         string `gorm:"primaryKey"`
	BusinessID string `gorm:"index"`
	Rating     float64
	Status     string
}

func (ReviewModel) TableName() string { return "reviews" }

type EventModel struct {
	ID          string `gorm:"primaryKey"`
	BusinessID  string `gorm:"index"`
	Title       string
	Description *string
	EventDate   time.Time
	Status      string
}

func (EventModel) TableName() string { return "business_events" }

type BusinessSubscriptionModel struct {
	ID         string `gorm:"primaryKey"`
	BusinessID string `gorm:"index"`
	PlanID     string
	Status     string
}

func (BusinessSubscriptionModel) TableName() string { return "business_subscriptions" }

type BusinessPlanModel struct {
	ID   string `gorm:"primaryKey"`
	Name string
	Tier string
}

func (BusinessPlanModel) TableName() string { return "business_plans" }

type AdModel struct {
	ID         string `gorm:"primaryKey"`
	BusinessID string `gorm:"index"`
	Placement  string
	Status     string
	StartDate  time.Time
	EndDate    time.Time
}

func (AdModel) TableName() string { return "business_ads" }

type UserSubscriptionModel struct {
	ID     string `gorm:"primaryKey"`
	UserID string `gorm:"index"`
	PlanID string
	Status string
}

func (UserSubscriptionModel) TableName() string { return "user_subscriptions" }

type UserPlanModel struct {
	ID   string `gorm:"primaryKey"`
	Name string
	Tier string
}

func (UserPlanModel) TableName() string { return "user_plans" }

// AllModels lists every table the gateway reads.
func AllModels() []any {
	return []any{
		&BusinessModel{}, &CategoryModel{}, &BusinessParishModel{}, &HoursModel{},
		&MenuSectionModel{}, &MenuItemModel{}, &DealModel{}, &ReviewModel{}, &EventModel{},
		&BusinessSubscriptionModel{}, &BusinessPlanModel{}, &AdModel{},
		&UserSubscriptionModel{}, &UserPlanModel{},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
