package domain

// PermissionSet maps a permission key to its granted value. Values are
// either symbolic levels ("result_only", "full_analysis", "total", ...)
// or "true"/"false" style flags kept as strings.
type PermissionSet map[string]string

// ModulePermissions maps a module name to the permissions a role holds in it.
type ModulePermissions map[string]PermissionSet

// PermissionMatrix is the static role -> module -> key -> value policy.
// It is built once at startup and injected wherever access decisions are
// made; nothing mutates it afterwards. Absence at any level means deny.
type PermissionMatrix struct {
	roles map[string]ModulePermissions
}

// NewPermissionMatrix builds the platform's default policy.
func NewPermissionMatrix() *PermissionMatrix {
	return &PermissionMatrix{roles: map[string]ModulePermissions{
		RoleNatural: {
			"ia":           {"analysis": "result_only"},
			"health":       {"records": "own"},
			"market":       {"trade": "true"},
			"democracy":    {"vote": "true"},
			"volunteering": {"join": "true"},
		},
		RoleGobierno: {
			"ia":         {"analysis": "full_analysis"},
			"health":     {"records": "aggregate"},
			"governance": {"audit": "total"},
			"democracy":  {"vote": "true", "results": "full"},
		},
		RoleAdmin: {
			"ia":           {"analysis": "full_analysis"},
			"health":       {"records": "aggregate"},
			"governance":   {"audit": "total"},
			"market":       {"trade": "true", "moderation": "true"},
			"democracy":    {"vote": "true", "results": "full"},
			"volunteering": {"join": "true", "coordination": "true"},
			"user":         {"management": "global"},
		},
		RoleMantenimiento: {
			"ia":   {"analysis": "result_only"},
			"user": {"management": "technical"},
		},
	}}
}

// PermissionsFor returns the full permission map for a role. Unknown roles
// get an empty map, never nil and never an error.
func (m *PermissionMatrix) PermissionsFor(role string) ModulePermissions {
	mods, ok := m.roles[role]
	if !ok {
		return ModulePermissions{}
	}
	return mods
}

// Has reports whether role holds one of the accepted values for the given
// module and key. Fail-closed: an unknown role, module, or key denies.
func (m *PermissionMatrix) Has(role, module, key string, accepted ...string) bool {
	set, ok := m.roles[role][module]
	if !ok {
		return false
	}
	value, ok := set[key]
	if !ok {
		return false
	}
	for _, want := range accepted {
		if value == want {
			return true
		}
	}
	return false
}

// HasModule reports whether role has any permissions at all in module.
// Used by the authorization middleware to log a sharper denial reason.
func (m *PermissionMatrix) HasModule(role, module string) bool {
	_, ok := m.roles[role][module]
	return ok
}
