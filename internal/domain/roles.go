package domain

// Role adalah enumerasi tertutup. Perbandingan role selalu lewat konstanta
// ini, tidak pernah lewat string bebas dari request.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleTeamLead Role = "TEAM_LEAD"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamLead, RoleEmployee:
		return true
	default:
		return false
	}
}

// IsPrivileged menandai role yang boleh membaca data milik user lain.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleTeamLead
}

type EnforceRequest struct {
	Role     Role   `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
