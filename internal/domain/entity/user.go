package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Permisos verificados por RequirePermission.
const (
	PermissionStockRead     = "estoque:read"
	PermissionStockWrite    = "estoque:write"
	PermissionProductsRead  = "produtos:read"
	PermissionProductsWrite = "produtos:write"
)

var rolePermissions = map[string][]string{
	RoleAdmin:     {PermissionStockRead, PermissionStockWrite, PermissionProductsRead, PermissionProductsWrite},
	RoleBodeguero: {PermissionStockRead, PermissionStockWrite, PermissionProductsRead},
	RoleVendedor:  {PermissionStockRead, PermissionProductsRead},
}

// RoleHasPermission informa si el rol concede el permiso. Roles desconocidos no tienen ninguno.
func RoleHasPermission(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidRole informa si el rol existe.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
