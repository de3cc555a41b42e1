package transfer

// LoginResponse is the payload of POST /auth/login on the private API
// bridge. SessionID is the opaque token proving the authenticated session.
type LoginResponse struct {
	SessionID string `json:"sessionid"`
}

// SettingsResponse is the payload of GET /auth/settings/get, used as a
// lightweight session validity probe.
type SettingsResponse struct {
	UUID   string `json:"uuid"`
	Detail string `json:"detail,omitempty"`
}

// PublishResponse is the payload of POST /photo/upload/by_url and
// /video/upload/by_url. Code is the media shortcode the public permalink is
// built from.
type PublishResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// UserInfoResponse is the payload of POST /user/info.
type UserInfoResponse struct {
	Username string `json:"username"`
}
