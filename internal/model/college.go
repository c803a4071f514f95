package model

type College struct {
	Model
	Name          string `gorm:"type:varchar(100);not null" json:"name"`
	Location      string `gorm:"type:varchar(255)" json:"location"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	Email         string `gorm:"type:varchar(100)" json:"email"`
	Address       string `gorm:"type:varchar(255)" json:"address"`
}
