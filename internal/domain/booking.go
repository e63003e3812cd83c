package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID            string        `json:"id" gorm:"type:varchar(64);primaryKey"`
	CleanerID     string        `json:"cleaner_id" gorm:"type:varchar(64);not null;index"`
	ClientEmail   string        `json:"client_email" gorm:"type:varchar(255);not null;index"`
	Date          string        `json:"date" gorm:"type:varchar(10);not null"`
	StartTime     string        `json:"start_time" gorm:"type:varchar(5);not null"`
	Hours         float64       `json:"hours" gorm:"not null"`
	DistanceMiles float64       `json:"distance_miles"`
	ServiceType   ServiceType   `json:"service_type" gorm:"type:varchar(32)"`
	Tasks         []string      `json:"tasks,omitempty" gorm:"type:text;serializer:json"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`

	// Quote snapshot taken at creation time.
	SnapshotBasePrice  decimal.Decimal `json:"snapshot_base_price" gorm:"type:numeric(12,2)"`
	SnapshotMultiplier decimal.Decimal `json:"snapshot_multiplier" gorm:"type:numeric(10,6)"`
	SnapshotExtraFees  decimal.Decimal `json:"snapshot_extra_fees" gorm:"type:numeric(12,2)"`
	SnapshotSubtotal   decimal.Decimal `json:"snapshot_subtotal" gorm:"type:numeric(12,2)"`
	SnapshotTotal      decimal.Decimal `json:"snapshot_total" gorm:"type:numeric(12,2)"`
	SnapshotRules      []string        `json:"snapshot_rules,omitempty" gorm:"type:text;serializer:json"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (Booking) TableName() string { return "bookings" }
