// Package access concentra la decisión de permisos: el rol se normaliza una sola vez
// y cada capacidad se evalúa contra una tabla, no con comparaciones sueltas de strings.
package access

import "strings"

// Role rol normalizado de un usuario.
type Role string

// Roles válidos.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSales   Role = "sales"
	RoleUnknown Role = ""
)

// Capability acción protegida del sistema.
type Capability string

// Capacidades.
const (
	CapViewCatalog   Capability = "catalog:view"
	CapManageCatalog Capability = "catalog:manage"
	CapAdjustStock   Capability = "stock:adjust"
	CapCreateSale    Capability = "sales:create"
	CapManageSales   Capability = "sales:manage"
	CapViewReports   Capability = "reports:view"
	CapManageUsers   Capability = "users:manage"
)

// Decision resultado tipado de una verificación de permisos.
type Decision struct {
	Allowed    bool
	Role       Role
	Capability Capability
	Reason     string
}

var grants = map[Role][]Capability{
	RoleAdmin: {
		CapViewCatalog, CapManageCatalog, CapAdjustStock, CapCreateSale,
		CapManageSales, CapViewReports, CapManageUsers,
	},
	RoleManager: {
		CapViewCatalog, CapManageCatalog, CapAdjustStock, CapCreateSale,
		CapManageSales, CapViewReports,
	},
	RoleSales: {CapViewCatalog, CapCreateSale, CapViewReports},
}

// ParseRole normaliza las distintas representaciones de un rol ("Admin", "ADMIN", " admin ").
// Devuelve RoleUnknown si no corresponde a ningún rol válido.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	case RoleSales:
		return RoleSales
	}
	return RoleUnknown
}

// Decide evalúa si el rol tiene la capacidad.
func Decide(role Role, capability Capability) Decision {
	d := Decision{Role: role, Capability: capability}
	if role == RoleUnknown {
		d.Reason = "rol desconocido"
		return d
	}
	for _, c := range grants[role] {
		if c == capability {
			d.Allowed = true
			return d
		}
	}
	d.Reason = "el rol '" + string(role) + "' no tiene la capacidad '" + string(capability) + "'"
	return d
}
