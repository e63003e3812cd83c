package domain

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleCleaner UserRole = "cleaner"
	RoleAdmin   UserRole = "admin"
)
