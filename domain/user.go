package domain

// Account is a registered user. The password hash never leaves the
// service layer; transport responses echo only the username.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    int64
}
