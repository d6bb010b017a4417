package domain

import "time"

type ChatMessage struct {
	ID        int64
	UserID    int64
	Message   string
	CreatedAt time.Time
}
