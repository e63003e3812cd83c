package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewCleanerJobThreshold is the completed-job count below which an active
// cleaner is priced with the new-cleaner discount.
const NewCleanerJobThreshold = 5

type ServiceType string

const (
	ServiceStandard  ServiceType = "standard"
	ServiceDeepClean ServiceType = "deep_clean"
	ServiceMoveOut   ServiceType = "move_out"
)

// ServicePrice is a cleaner-specific price for an additional task.
// PerUnit prices are multiplied by the requested quantity.
type ServicePrice struct {
	Price   decimal.Decimal `json:"price"`
	PerUnit bool            `json:"per_unit"`
}

type CleanerProfile struct {
	ID                 string                  `json:"id" gorm:"type:varchar(64);primaryKey"`
	Email              string                  `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	FullName           string                  `json:"full_name"`
	HourlyRate         int64                   `json:"hourly_rate" gorm:"not null;default:0"`
	DeepCleanRate      int64                   `json:"deep_clean_rate" gorm:"not null;default:0"`
	MoveOutRate        int64                   `json:"move_out_rate" gorm:"not null;default:0"`
	AdditionalServices map[string]ServicePrice `json:"additional_services,omitempty" gorm:"type:text;serializer:json"`
	TotalJobs          int                     `json:"total_jobs" gorm:"not null;default:0"`
	IsActive           bool                    `json:"is_active" gorm:"not null"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

func (CleanerProfile) TableName() string { return "cleaner_profiles" }

// RateCard is the read-only pricing view of a cleaner profile.
type RateCard struct {
	CleanerID          string
	HourlyRate         int64
	AddOnRates         map[ServiceType]int64
	AdditionalServices map[string]ServicePrice
	TotalJobs          int
	IsActive           bool
}

func (p *CleanerProfile) RateCard() *RateCard {
	addOns := make(map[ServiceType]int64, 2)
	if p.DeepCleanRate > 0 {
		addOns[ServiceDeepClean] = p.DeepCleanRate
	}
	if p.MoveOutRate > 0 {
		addOns[ServiceMoveOut] = p.MoveOutRate
	}
	return &RateCard{
		CleanerID:          p.ID,
		HourlyRate:         p.HourlyRate,
		AddOnRates:         addOns,
		AdditionalServices: p.AdditionalServices,
		TotalJobs:          p.TotalJobs,
		IsActive:           p.IsActive,
	}
}

// IsNewCleaner reports whether the new-cleaner discount applies.
func (r *RateCard) IsNewCleaner() bool {
	return r.TotalJobs < NewCleanerJobThreshold && r.IsActive
}

// RateFor returns the hourly rate including any add-on for the service type.
func (r *RateCard) RateFor(st ServiceType) int64 {
	return r.HourlyRate + r.AddOnRates[st]
}
