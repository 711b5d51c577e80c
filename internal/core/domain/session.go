package domain

import "time"

// UserProfile is the platform user as reported by the upstream API. It is
// replaced wholesale on every refetch, never partially mutated.
type UserProfile struct {
	ID          string `json:"id"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Phonenumber string `json:"phonenumber"`
	Status      string `json:"status"`
	Role        string `json:"role"`
}

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Session holds the upstream token pair and the cached profile for one
// client. The browser only ever sees the signed session-ID cookie; the
// tokens themselves stay server-side.
type Session struct {
	ID           string       `json:"id"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         *UserProfile `json:"user,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
