package access

import (
	"github.com/casbin/casbin/v2"

	"metaedge-portal/internal/principal"
)

// basePolicy berlaku untuk semua level melalui pewarisan
// full -> multi_team -> team_only. Pembatasan per-baris (own vs team vs all)
// tetap dilakukan di service layer; policy ini hanya gerbang resource:action.
var basePolicy = [][3]string{
	{principal.AccessTeamOnly, "clock", "read"},
	{principal.AccessTeamOnly, "clock", "create"},
	{principal.AccessTeamOnly, "tasks", "read"},
	{principal.AccessTeamOnly, "tasks", "create"},
	{principal.AccessTeamOnly, "tasks", "update"},
	{principal.AccessTeamOnly, "tasks", "delete"},
	{principal.AccessTeamOnly, "leaves", "read"},
	{principal.AccessTeamOnly, "leaves", "create"},
	{principal.AccessTeamOnly, "notes", "read"},
	{principal.AccessTeamOnly, "notes", "create"},
	{principal.AccessTeamOnly, "notes", "update"},
	{principal.AccessTeamOnly, "notes", "delete"},
	{principal.AccessTeamOnly, "reports", "read"},
	{principal.AccessTeamOnly, "reports", "create"},
	{principal.AccessTeamOnly, "reports", "update"},
	{principal.AccessTeamOnly, "reports", "delete"},
	{principal.AccessTeamOnly, "teams", "read"},
	{principal.AccessTeamOnly, "employees", "options"},
}

var fullPolicy = [][3]string{
	{principal.AccessFull, "leaves", "decide"},
	{principal.AccessFull, "clock", "read_all"},
	{principal.AccessFull, "teams", "create"},
	{principal.AccessFull, "teams", "update"},
	{principal.AccessFull, "teams", "delete"},
	{principal.AccessFull, "teams", "members"},
	{principal.AccessFull, "employees", "read"},
	{principal.AccessFull, "employees", "create"},
	{principal.AccessFull, "employees", "update"},
}

func loadStaticPolicy(e *casbin.Enforcer) error {
	e.ClearPolicy()

	for _, p := range append(append([][3]string{}, basePolicy...), fullPolicy...) {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	// full mewarisi multi_team, multi_team mewarisi team_only
	if _, err := e.AddGroupingPolicy(principal.AccessFull, principal.AccessMultiTeam); err != nil {
		return err
	}
	if _, err := e.AddGroupingPolicy(principal.AccessMultiTeam, principal.AccessTeamOnly); err != nil {
		return err
	}

	return nil
}

// Allowed mengevaluasi access level terhadap resource:action.
func Allowed(e *casbin.Enforcer, accessLevel, resource, action string) (bool, error) {
	return e.Enforce(accessLevel, resource, action)
}
