package models

import "time"

// Task is a flat todo item, independent of any plan.
type Task struct {
	TaskID      string    `json:"id" bson:"taskid"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Time        string    `json:"time,omitempty" bson:"time,omitempty"` // optional HH:mm
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TaskPatch carries a partial task update; nil fields are untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Time        *string `json:"time,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}
