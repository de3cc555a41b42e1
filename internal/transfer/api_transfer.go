package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialsUpdate carries the operator-editable credential fields.
type CredentialsUpdate struct {
	AccessToken  string `json:"access_token"`
	ClientSecret string `json:"client_secret"`
	ClientID     string `json:"client_id"`
	IgAccountID  string `json:"ig_account_id"`
}

type GeneralConfigUpdate struct {
	UploadRate             int    `json:"upload_rate"`
	DescriptionBoilerplate string `json:"description_boilerplate"`
	HashtagFetchingEnabled bool   `json:"hashtag_fetching_enabled"`
}

type QueuePostRequest struct {
	PostID    string `json:"post_id"`
	MediaType string `json:"media_type"`
}

type HashtagRequest struct {
	Name string `json:"name"`
}

type FetchRequest struct {
	Hashtag string `json:"hashtag"`
	Kind    string `json:"kind"`
}
