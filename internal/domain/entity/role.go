package entity

// Roles aceptados en los tokens de operador.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// WriteRoles roles habilitados para modificar líneas y clientes.
var WriteRoles = []string{RoleAdmin, RoleOperator}
