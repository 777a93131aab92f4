package enums

type Role string

const (
	RolePlain     Role = "PLAIN"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)
