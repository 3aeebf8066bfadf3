package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the SaveEnergy calculator
type User struct {
	ID           string `gorm:"type:text;primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	CreatedAt    string `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}
