package payout

import "puretask/internal/domain"

type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

const neutralColor = "gray"

var payoutStatusDisplay = map[domain.PayoutStatus]StatusDisplay{
	domain.PayoutPending:   {Label: "Processing", Color: "yellow"},
	domain.PayoutCompleted: {Label: "Paid", Color: "green"},
	domain.PayoutFailed:    {Label: "Failed", Color: "red"},
}

var earningStatusDisplay = map[domain.EarningStatus]StatusDisplay{
	domain.EarningPending:  {Label: "Pending", Color: "yellow"},
	domain.EarningBatched:  {Label: "In payout", Color: "blue"},
	domain.EarningPaid:     {Label: "Paid", Color: "green"},
	domain.EarningReversed: {Label: "Reversed", Color: "red"},
}

// PayoutStatusDisplay falls back to the raw status in gray.
func PayoutStatusDisplay(s domain.PayoutStatus) StatusDisplay {
	if d, ok := payoutStatusDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: neutralColor}
}

func EarningStatusDisplay(s domain.EarningStatus) StatusDisplay {
	if d, ok := earningStatusDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: neutralColor}
}
