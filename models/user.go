package models

import "time"

type User struct {
	ID         int        `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	Bio        string     `json:"bio"`
	Avatar     string     `json:"avatar"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
}

// ProfileInput тело PUT /users/me/. Пустые поля не отправляются;
// nil Bio не меняет био, пустая строка очищает его.
type ProfileInput struct {
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ /login/.
type LoginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       int    `json:"id"`
}
