package models

import "time"

// GeneralConfig is the singleton operator configuration.
// UploadRate is the minimum number of minutes between two successful
// publishes.
type GeneralConfig struct {
	ID                     int64     `db:"id" json:"id"`
	UploadRate             int       `db:"upload_rate" json:"upload_rate"`
	DescriptionBoilerplate string    `db:"description_boilerplate" json:"description_boilerplate"`
	HashtagFetchingEnabled bool      `db:"hashtag_fetching_enabled" json:"hashtag_fetching_enabled"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}
