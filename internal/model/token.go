package model

// TokenManager signs and validates access tokens.
type TokenManager interface {
	GenerateAccessToken(claims Claims) (string, error)
	ParseAccessToken(token string) (Claims, error)
}

// Claims identify the authenticated account.
type Claims struct {
	AccountID  int64
	Email      string
	Identifier string
	Role       Role
}

// ClaimsFor builds token claims for an account.
func ClaimsFor(a Account) Claims {
	return Claims{
		AccountID:  a.ID,
		Email:      a.Email,
		Identifier: a.Identifier(),
		Role:       a.Role,
	}
}
