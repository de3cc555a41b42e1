package models

import "time"

// Hashtag is one tracked hashtag the fetch job discovers content for.
type Hashtag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
