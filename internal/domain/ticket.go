package domain

import "time"

// Ticket is a seat purchased on a flight. Status true means paid and valid;
// only those count toward revenue.
type Ticket struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id" binding:"required,gt=0"`
	FlightID  int64     `gorm:"not null;index" json:"flight_id" binding:"required,gt=0"`
	PaymentID *int64    `gorm:"index" json:"payment_id,omitempty"`
	SeatClass SeatClass `gorm:"size:10;not null" json:"seat_class" binding:"required,oneof=ECONOMY BUSINESS"`
	Price     float64   `gorm:"type:numeric(12,2);not null" json:"price" binding:"gte=0"`
	Status    bool      `gorm:"not null;default:false" json:"status"`
	Gate      string    `gorm:"size:10" json:"gate" binding:"max=10"`
	IssueDate time.Time `gorm:"not null" json:"issue_date"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Flight  *Flight  `gorm:"foreignKey:FlightID" json:"-"`
	Payment *Payment `gorm:"foreignKey:PaymentID" json:"-"`
}

func (Ticket) TableName() string { return "tickets" }

func (t *Ticket) Validate() error {
	if t.IssueDate.IsZero() {
		t.IssueDate = time.Now()
	}
	return nil
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

type Payment struct {
	ID        int64         `gorm:"primaryKey" json:"id"`
	Reference string        `gorm:"size:36;uniqueIndex;not null" json:"reference" binding:"required"`
	UserID    int64         `gorm:"not null;index" json:"user_id" binding:"required,gt=0"`
	Amount    float64       `gorm:"type:numeric(12,2);not null" json:"amount" binding:"gte=0"`
	Status    PaymentStatus `gorm:"size:10;not null;index" json:"status" binding:"required,oneof=PENDING PAID EXPIRED"`
	ExpiresAt time.Time     `gorm:"not null" json:"expires_at"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string { return "payments" }

// Cancellation releases a ticket's seat; a ticket has at most one.
type Cancellation struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	TicketID    int64     `gorm:"not null;uniqueIndex" json:"ticket_id" binding:"required,gt=0"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `gorm:"not null" json:"cancelled_at"`

	Ticket *Ticket `gorm:"foreignKey:TicketID" json:"-"`
}

func (Cancellation) TableName() string { return "cancellations" }

func (c *Cancellation) Validate() error {
	if c.CancelledAt.IsZero() {
		c.CancelledAt = time.Now()
	}
	return nil
}

type Luggage struct {
	ID       int64   `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:100;not null" json:"name" binding:"required,max=100"`
	Weight   float64 `json:"weight" binding:"gte=0"`
	UserID   int64   `gorm:"not null;index" json:"user_id" binding:"required,gt=0"`
	FlightID int64   `gorm:"not null;index" json:"flight_id" binding:"required,gt=0"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Flight *Flight `gorm:"foreignKey:FlightID" json:"-"`
}

func (Luggage) TableName() string { return "luggage" }

type FlightSchedule struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	FlightID int64 `gorm:"not null;index" json:"flight_id" binding:"required,gt=0"`
	UserID   int64 `gorm:"not null;index" json:"user_id" binding:"required,gt=0"`

	Flight *Flight `gorm:"foreignKey:FlightID" json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
}

func (FlightSchedule) TableName() string { return "flight_schedules" }
