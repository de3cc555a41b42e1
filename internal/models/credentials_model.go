package models

import "time"

// Credentials is the singleton record for the destination account.
// Password and SessionID are stored AES-GCM encrypted.
type Credentials struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Password     string    `db:"password" json:"-"`
	SessionID    string    `db:"session_id" json:"-"`
	FacebookID   string    `db:"facebook_id" json:"facebook_id"`
	AccessToken  string    `db:"access_token" json:"access_token"`
	ClientSecret string    `db:"client_secret" json:"client_secret"`
	ClientID     string    `db:"client_id" json:"client_id"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
