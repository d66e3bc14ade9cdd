package models

import "time"

type Headline struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

// Delivery - одно сообщение с заголовками, сформированное циклом рассылки.
type Delivery struct {
	ID           string
	ChatIdentity string
	Source       string
	Text         string
	CreatedAt    time.Time
}
