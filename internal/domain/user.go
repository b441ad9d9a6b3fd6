package domain

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants administrative access.
	RoleAdmin Role = "admin"
	// RoleUser grants standard access.
	RoleUser Role = "user"
)

// User represents an authenticated account in the system.
type User struct {
	Record
	Email        string   `json:"email"`
	Nickname     string   `json:"nickname"`
	PasswordHash string   `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role         Role     `json:"role"`
	Favorites    []string `json:"favorites,omitempty"` // Edit IDs, insertion order
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasFavorite reports whether editID is in the user's favorites.
func (u *User) HasFavorite(editID string) bool {
	for _, id := range u.Favorites {
		if id == editID {
			return true
		}
	}
	return false
}

// AddFavorite appends editID to the favorites if not already present.
// Returns true if the set changed.
func (u *User) AddFavorite(editID string) bool {
	if u.HasFavorite(editID) {
		return false
	}
	u.Favorites = append(u.Favorites, editID)
	return true
}

// RemoveFavorite deletes editID from the favorites if present.
// Returns true if the set changed.
func (u *User) RemoveFavorite(editID string) bool {
	for i, id := range u.Favorites {
		if id == editID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return true
		}
	}
	return false
}
