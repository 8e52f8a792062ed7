package auth

// User is a registered account. One User per Email; the registry never
// mutates a stored User, only replaces or removes it.
type User struct {
	Email         Email
	PasswordHash  string
	RequiresTwoFA bool
}

// NewUser hashes the validated password and builds the account record.
func NewUser(email Email, password Password, requiresTwoFA bool) (User, error) {
	hash, err := password.Hash()
	if err != nil {
		return User{}, err
	}

	return User{
		Email:         email,
		PasswordHash:  hash,
		RequiresTwoFA: requiresTwoFA,
	}, nil
}
