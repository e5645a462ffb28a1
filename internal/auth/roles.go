package auth

import "strings"

// Role is the caller's platform role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// NormalizeRole maps a claim value to a Role. An empty claim means player.
func NormalizeRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(RolePlayer):
		return RolePlayer, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}
