package auth

import "github.com/gin-gonic/gin"

// Identity is the authenticated caller as seen by service-layer
// authorization checks.
type Identity struct {
	UserID int
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

func (id Identity) IsCoach() bool {
	return id.Role == RoleCoach
}

// CanActOnOwned reports whether the caller may mutate a resource owned by
// ownerID. Admins bypass the ownership check.
func (id Identity) CanActOnOwned(ownerID int) bool {
	return id.IsAdmin() || id.UserID == ownerID
}

// CanActOnSession reports whether the caller is a participant of a session
// between userID and coachID. Admins bypass the participant check.
func (id Identity) CanActOnSession(userID, coachID int) bool {
	return id.IsAdmin() || id.UserID == userID || id.UserID == coachID
}

// CallerIdentity extracts the Identity set by AuthMiddleware.
func CallerIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return Identity{}, false
	}

	role, exists := c.Get("user_role")
	if !exists {
		return Identity{}, false
	}

	roleStr, ok := role.(string)
	if !ok {
		return Identity{}, false
	}

	return Identity{UserID: userID, Role: roleStr}, true
}
