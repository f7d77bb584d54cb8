package interfaces

import "github.com/m-mizutani/goerr/v2"

// Shared repository error sentinels. Every backend wraps these so callers
// can branch on the failure class without knowing the storage engine.
var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
)
