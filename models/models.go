package models

import (
    "time"
    "go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule type tags. Any other value (or an empty one) is treated as daily,
// so a habit with a malformed schedule still notifies rather than going silent.
const (
	ScheduleDaily  = "daily"
	ScheduleWeekly = "weekly"
)

type User struct {
    ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
    Email    string             `bson:"email,omitempty" json:"email"`
    Timezone string             `bson:"timezone,omitempty" json:"timezone"`
}

// Schedule is the recurrence rule of a habit. Type is "daily" or "weekly";
// DaysOfWeek holds ISO weekday numbers (Monday=1 .. Sunday=7) and is only
// consulted for weekly schedules.
type Schedule struct {
	Type       string `bson:"type,omitempty" json:"type"`
	DaysOfWeek []int  `bson:"days_of_week,omitempty" json:"days_of_week"`
}

// Reminder is the optional exact-time reminder configuration of a habit.
// Time is a 24-hour "HH:mm" wall-clock string in the habit's effective zone.
type Reminder struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Time    string `bson:"time,omitempty" json:"time"`
}

type Habit struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name     string             `bson:"name" json:"name"`
	Archived bool               `bson:"archived" json:"archived"`
	Schedule Schedule           `bson:"schedule,omitempty" json:"schedule"`
	Reminder *Reminder          `bson:"reminder,omitempty" json:"reminder"`
	// Timezone overrides the owning user's zone for this habit's reminder.
	Timezone string `bson:"timezone,omitempty" json:"timezone"`
}

// PushToken is a device registration token owned by exactly one user.
// Tokens are created when a client registers for push and deleted when the
// delivery transport reports them permanently invalid.
type PushToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Token     string             `bson:"token" json:"token"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
