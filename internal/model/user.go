package model

// 账号权限等级，数值越大权限越高
const (
	UserRoleEmployee = iota
	UserRoleManager
	UserRoleAdmin
)

type User struct {
	Model
	Email    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(50);not null" json:"name"`
	RoleID   int    `gorm:"default:0;not null" json:"role_id"`
}
