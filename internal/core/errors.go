// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
