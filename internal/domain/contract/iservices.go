package contract

import "errors"

// Repository sentinels. Implementations translate driver errors to these.
var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyExists     = errors.New("record already exists")
	ErrReferenceNotFound = errors.New("referenced record not found")
)

// IHasher hashes and verifies passwords.
type IHasher interface {
	HashPassword(password string) (string, error)
	// VerifyPassword reports whether password matches hash. A malformed hash
	// is a mismatch.
	VerifyPassword(password, hash string) bool
}

type IUUIDGenerator interface {
	NewUUID() string
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}
