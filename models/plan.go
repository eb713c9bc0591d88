package models

import "time"

// ActivityType categorizes a scheduled item.
type ActivityType string

const (
	TypeActivity      ActivityType = "activity"
	TypeMeal          ActivityType = "meal"
	TypeTravel        ActivityType = "travel"
	TypeRest          ActivityType = "rest"
	TypeEntertainment ActivityType = "entertainment"
	TypeSightseeing   ActivityType = "sightseeing"
	TypeShopping      ActivityType = "shopping"
	TypeSports        ActivityType = "sports"
	TypeWellness      ActivityType = "wellness"
	TypeSocial        ActivityType = "social"
	TypeWork          ActivityType = "work"
	TypeCustom        ActivityType = "custom"
)

// Valid reports whether t is one of the enumerated categories.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeActivity, TypeMeal, TypeTravel, TypeRest, TypeEntertainment,
		TypeSightseeing, TypeShopping, TypeSports, TypeWellness, TypeSocial,
		TypeWork, TypeCustom:
		return true
	}
	return false
}

// ActivityStatus tracks where an activity is in its lifecycle.
// Any status may transition back to "planned"; none is terminal.
type ActivityStatus string

const (
	StatusPlanned    ActivityStatus = "planned"
	StatusInProgress ActivityStatus = "in-progress"
	StatusCompleted  ActivityStatus = "completed"
	StatusSkipped    ActivityStatus = "skipped"
	StatusPostponed  ActivityStatus = "postponed"
)

// Valid reports whether the status is one of the five enumerated values.
// The engine imposes no transition guard beyond this.
func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusSkipped, StatusPostponed:
		return true
	}
	return false
}

// PlanStatus is the lifecycle state of a whole plan.
type PlanStatus string

const (
	PlanDraft     PlanStatus = "draft"
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanArchived  PlanStatus = "archived"
)

// Activity is one scheduled unit of time within a day.
type Activity struct {
	ID          string         `json:"id" bson:"id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Type        ActivityType   `json:"type" bson:"type"`
	StartTime   string         `json:"startTime" bson:"startTime"` // HH:mm, 24h wall clock
	Duration    int            `json:"duration" bson:"duration"`   // minutes
	Location    string         `json:"location,omitempty" bson:"location,omitempty"`
	Status      ActivityStatus `json:"status" bson:"status"`
	Cost        float64        `json:"cost,omitempty" bson:"cost,omitempty"`
	IsBreak     bool           `json:"isBreak,omitempty" bson:"isBreak,omitempty"`
	AISuggested bool           `json:"aiSuggested,omitempty" bson:"aiSuggested,omitempty"`
	Order       int            `json:"order" bson:"order"`
}

// ActivityPatch carries a partial activity update. Nil fields are untouched;
// there are no field-removal semantics.
type ActivityPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Type        *ActivityType   `json:"type,omitempty"`
	StartTime   *string         `json:"startTime,omitempty"`
	Duration    *int            `json:"duration,omitempty"`
	Location    *string         `json:"location,omitempty"`
	Status      *ActivityStatus `json:"status,omitempty"`
	Cost        *float64        `json:"cost,omitempty"`
	Order       *int            `json:"order,omitempty"`
}

// PlanPatch carries a partial plan update. Nil fields are untouched. Days is
// a full replacement day set when non-nil; it is computed by the lifecycle
// manager on date-range changes, never taken from the client directly.
type PlanPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Destination *string          `json:"destination,omitempty"`
	CoverImage  *string          `json:"coverImage,omitempty"`
	Status      *PlanStatus      `json:"status,omitempty"`
	StartDate   *string          `json:"startDate,omitempty"`
	EndDate     *string          `json:"endDate,omitempty"`
	Preferences *PlanPreferences `json:"preferences,omitempty"`
	Sharing     *SharingSettings `json:"-"`
	Days        []DayPlan        `json:"-"`
}

// Weather is a decorative per-day forecast snapshot.
type Weather struct {
	Condition   string  `json:"condition" bson:"condition"`
	Temperature float64 `json:"temperature" bson:"temperature"`
	Icon        string  `json:"icon,omitempty" bson:"icon,omitempty"`
}

// DayPlan is one calendar date's ordered activity timeline within a plan.
type DayPlan struct {
	ID         string     `json:"id" bson:"id"`
	Date       string     `json:"date" bson:"date"` // YYYY-MM-DD
	DayNumber  int        `json:"dayNumber" bson:"dayNumber"`
	Title      string     `json:"title,omitempty" bson:"title,omitempty"`
	Activities []Activity `json:"activities" bson:"activities"`
	Weather    *Weather   `json:"weather,omitempty" bson:"weather,omitempty"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty"`
}

// MealTimes are the preferred wall-clock meal anchors.
type MealTimes struct {
	Breakfast string `json:"breakfast,omitempty" bson:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty" bson:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty" bson:"dinner,omitempty"`
}

// PlanPreferences supply scheduling defaults for a plan. Always present.
type PlanPreferences struct {
	WakeUpTime     string    `json:"wakeUpTime" bson:"wakeUpTime"`
	SleepTime      string    `json:"sleepTime" bson:"sleepTime"`
	MealTimes      MealTimes `json:"mealTimes" bson:"mealTimes"`
	BreakFrequency int       `json:"breakFrequency" bson:"breakFrequency"` // minutes between breaks
	BreakDuration  int       `json:"breakDuration" bson:"breakDuration"`   // minutes per break
	TravelBuffer   int       `json:"travelBuffer" bson:"travelBuffer"`
	Pace           string    `json:"pace" bson:"pace"` // relaxed/moderate/packed
}

// SharedUser is a collaborator entry. Contract only, permissions unenforced.
type SharedUser struct {
	ID         string    `json:"id" bson:"id"`
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name,omitempty" bson:"name,omitempty"`
	Permission string    `json:"permission" bson:"permission"` // view/suggest/edit
	AddedAt    time.Time `json:"addedAt" bson:"addedAt"`
}

// SharingSettings mark a plan as shareable via an opaque link.
type SharingSettings struct {
	IsPublic   bool         `json:"isPublic" bson:"isPublic"`
	ShareLink  string       `json:"shareLink,omitempty" bson:"shareLink,omitempty"`
	SharedWith []SharedUser `json:"sharedWith" bson:"sharedWith"`
}

// Plan is a trip or event spanning a contiguous date range. Days and their
// activities are embedded; they have no identity outside the plan document.
type Plan struct {
	PlanID      string          `json:"id" bson:"planid"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Destination string          `json:"destination,omitempty" bson:"destination,omitempty"`
	CoverImage  string          `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Status      PlanStatus      `json:"status" bson:"status"`
	StartDate   string          `json:"startDate" bson:"startDate"` // YYYY-MM-DD, inclusive
	EndDate     string          `json:"endDate" bson:"endDate"`     // YYYY-MM-DD, inclusive
	Days        []DayPlan       `json:"days" bson:"days"`
	Preferences PlanPreferences `json:"preferences" bson:"preferences"`
	Sharing     SharingSettings `json:"sharing" bson:"sharing"`
	CreatedBy   string          `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}
