package entity

import "time"

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	FullName     string  `gorm:"size:100" json:"fullName"`
	Phone        *string `gorm:"size:15;uniqueIndex" json:"phone,omitempty"` // NULL for users without phone
	Role         Role    `gorm:"size:20;not null;default:customer" json:"role"`
	IsActive     bool    `gorm:"not null" json:"isActive"`

	LoyaltyPoints int  `gorm:"not null;default:0" json:"loyaltyPoints"`
	LoyaltyTier   Tier `gorm:"size:20;not null;default:bronze" json:"loyaltyTier"` // cache of TierFor(LoyaltyPoints)

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// preload only when needed
	CartItems []CartItem `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsDelivery() bool { return u.Role == RoleDelivery }

func (u *User) Actor() Actor { return Actor{UserID: u.ID, Role: u.Role} }

// DisplayName falls back to the username when no full name was given.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// TierInfo derives the tier from the balance and refreshes the cached label.
// It reports whether the label changed so callers can persist it.
func (u *User) TierInfo() (TierInfo, bool) {
	info := TierFor(u.LoyaltyPoints)
	if u.LoyaltyTier == info.Name {
		return info, false
	}
	u.LoyaltyTier = info.Name
	return info, true
}
