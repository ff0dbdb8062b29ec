package domain

import "time"

// User is the identity record issued by the CMS on login or registration.
// The CMS owns its shape beyond these fields.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session pairs the signed-in user with the bearer token for authenticated
// CMS requests. Both fields are set and cleared together; there is no valid
// state with only one of them present.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}
