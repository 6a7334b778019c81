package user

// User represents the users table. The unique index on Username backs up the
// check-then-insert flow in the auth service under concurrent signups. The
// hash lives in the `password` column; it never holds plaintext.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;not null"`
}
