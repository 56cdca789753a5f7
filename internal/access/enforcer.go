package access

import (
	_ "embed"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

// NewEnforcer membangun casbin enforcer dengan policy statis.
// Subjek policy adalah access level employee (full / multi_team / team_only),
// bukan role per-tenant: level akses portal bersifat tetap.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if err := loadStaticPolicy(e); err != nil {
		return nil, err
	}

	return e, nil
}
