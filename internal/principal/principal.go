package principal

const (
	AccessFull      = "full"
	AccessMultiTeam = "multi_team"
	AccessTeamOnly  = "team_only"
)

// Principal adalah identitas yang sudah diverifikasi dari bearer token.
// Dioper eksplisit ke setiap service call, bukan diambil dari global state.
type Principal struct {
	ID          string
	AccessLevel string
	AccessTeams []string
}

func ValidAccessLevel(level string) bool {
	switch level {
	case AccessFull, AccessMultiTeam, AccessTeamOnly:
		return true
	default:
		return false
	}
}

// IsFull: akses penuh ke seluruh data lintas team.
func (p Principal) IsFull() bool {
	return p.AccessLevel == AccessFull
}

// CanAccessTeam: full selalu boleh; selain itu teamID harus ada di AccessTeams.
func (p Principal) CanAccessTeam(teamID string) bool {
	if p.IsFull() {
		return true
	}
	for _, id := range p.AccessTeams {
		if id == teamID {
			return true
		}
	}
	return false
}

// Owns: baris milik sendiri.
func (p Principal) Owns(employeeID string) bool {
	return p.ID == employeeID
}
