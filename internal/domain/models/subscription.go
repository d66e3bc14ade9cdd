package models

import (
	"fmt"
	"time"
)

type Subscription struct {
	ID              int64
	UserID          int64
	ChatIdentity    string
	Source          string
	IntervalMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TaskKey идентифицирует периодическую рассылку в планировщике.
type TaskKey struct {
	ChatIdentity string
	Source       string
}

func (k TaskKey) String() string {
	return k.ChatIdentity + "/" + k.Source
}

type IntervalOption struct {
	Label   string
	Minutes int
}

var IntervalOptions = []IntervalOption{
	{Label: "1m", Minutes: 1},
	{Label: "15m", Minutes: 15},
	{Label: "1h", Minutes: 60},
	{Label: "3h", Minutes: 180},
	{Label: "6h", Minutes: 360},
	{Label: "12h", Minutes: 720},
	{Label: "1d", Minutes: 1440},
}

func FormatInterval(minutes int) string {
	switch {
	case minutes >= 1440 && minutes%1440 == 0:
		return fmt.Sprintf("%dd", minutes/1440)
	case minutes >= 60 && minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
