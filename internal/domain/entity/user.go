package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	Names        string
	Email        string
	PasswordHash string // bcrypt
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Permisos con nombre (view_/add_/change_/delete_ + modelo).
const (
	PermViewEntrada    = "view_entrada"
	PermAddEntrada     = "add_entrada"
	PermChangeEntrada  = "change_entrada"
	PermDeleteEntrada  = "delete_entrada"
	PermViewProduct    = "view_product"
	PermAddProduct     = "add_product"
	PermChangeProduct  = "change_product"
	PermDeleteProduct  = "delete_product"
	PermViewCategory   = "view_category"
	PermAddCategory    = "add_category"
	PermChangeCategory = "change_category"
	PermDeleteCategory = "delete_category"
	PermViewClient     = "view_client"
	PermAddClient      = "add_client"
	PermChangeClient   = "change_client"
	PermDeleteClient   = "delete_client"
	PermChangeCompany  = "change_company"
)

var rolePermissions = map[string][]string{
	RoleBodeguero: {
		PermViewEntrada, PermAddEntrada, PermChangeEntrada, PermDeleteEntrada,
		PermViewProduct, PermAddProduct, PermChangeProduct, PermDeleteProduct,
		PermViewCategory, PermAddCategory, PermChangeCategory, PermDeleteCategory,
		PermViewClient,
	},
	RoleVendedor: {
		PermViewClient, PermAddClient, PermChangeClient, PermDeleteClient,
		PermViewProduct, PermViewCategory, PermViewEntrada,
	},
}

// RoleHasPermission indica si el rol concede el permiso. admin tiene todos.
func RoleHasPermission(role, perm string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// ValidRole valida el nombre del rol.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBodeguero, RoleVendedor:
		return true
	}
	return false
}
