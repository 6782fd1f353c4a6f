package entity

// Reference roles seeded by migrations.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"

	// DefaultRoleID is assigned when a registration requests no roles.
	DefaultRoleID uint = 1
)

// DefaultRoles lists the seeded roles in id order.
var DefaultRoles = []Role{
	{ID: 1, Name: RoleStudent},
	{ID: 2, Name: RoleMentor},
	{ID: 3, Name: RoleAdmin},
}

// Role は参照用のロールです。コア処理からは読み取りのみ行います。
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex:idx_roles_name;size:32;not null"`
}

// UserRole はユーザーとロールの割り当てです。(UserID, RoleID) は一意です。
type UserRole struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex:idx_user_role;not null"`
	RoleID uint `gorm:"uniqueIndex:idx_user_role;not null"`
}
