package models

// UserRole personel kullanıcısının yetki seviyesini tanımlar.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleStaff    UserRole = "staff"
	UserRoleReadonly UserRole = "readonly" // Sadece görüntüleme, karar veremez
)

// User panel kullanıcısı (personel).
type User struct {
	BaseModel
	Name         string   `gorm:"type:varchar(150);not null"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string   `gorm:"type:varchar(255);not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'staff';index"`
	IsSystem     bool     `gorm:"default:false"`
	IsEnabled    bool     `gorm:"default:true;index"`
}

// CanDecide kullanıcının onay/ret kararı verip veremeyeceğini söyler.
// Readonly dışındaki tüm roller karar verebilir.
func (u *User) CanDecide() bool {
	return u.Role != UserRoleReadonly
}
