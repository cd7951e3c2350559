// AngelaMos | 2026
// entity.go

package auth

// User is one registered principal. The password never leaves the store in
// any form but the bcrypt hash, and the hash never serializes to JSON.
type User struct {
	Username     string `json:"username" dynamodbav:"username"`
	PasswordHash string `json:"-"        dynamodbav:"password"`
}
