package models

// Actor is the signed-in identity a mutation is performed on behalf of.
// Every mutating operation receives it explicitly; a nil actor means no session.
type Actor struct {
	AuthorID  string `json:"author_id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
}

// Identity is what the OAuth provider tells us about a signed-in account.
type Identity struct {
	AccountID string `json:"sub"`
	Name      string `json:"name"`
	Username  string `json:"login"`
	Email     string `json:"email"`
	Avatar    string `json:"picture"`
	Bio       string `json:"bio"`
}
