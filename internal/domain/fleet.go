package domain

type Company struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;not null" json:"name" binding:"required,max=150"`
}

func (Company) TableName() string { return "companies" }

// Plane carries the per-class capacity that seat availability is derived from.
type Plane struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100;not null" json:"name" binding:"required,max=100"`
	CompanyID     int64  `gorm:"not null;index" json:"company_id" binding:"required,gt=0"`
	EconomySeats  int    `gorm:"not null;default:0" json:"economy_seats" binding:"gte=0"`
	BusinessSeats int    `gorm:"not null;default:0" json:"business_seats" binding:"gte=0"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Plane) TableName() string { return "planes" }

type Seat struct {
	ID      int64     `gorm:"primaryKey" json:"id"`
	PlaneID int64     `gorm:"not null;index" json:"plane_id" binding:"required,gt=0"`
	Number  string    `gorm:"size:10;not null" json:"number" binding:"required,max=10"`
	Class   SeatClass `gorm:"size:10;not null" json:"class" binding:"required,oneof=ECONOMY BUSINESS"`

	Plane *Plane `gorm:"foreignKey:PlaneID" json:"-"`
}

func (Seat) TableName() string { return "seats" }
