package models

import "time"

type User struct {
	ID           int64
	ChatIdentity string
	CreatedAt    time.Time
}
