package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplicationStatus defines where an application sits in its lifecycle.
type ApplicationStatus string

const (
	DraftApplication           ApplicationStatus = "DRAFT"
	PaymentPendingApplication  ApplicationStatus = "PAYMENT_PENDING"
	PaymentVerifiedApplication ApplicationStatus = "PAYMENT_VERIFIED"
	PaymentRejectedApplication ApplicationStatus = "PAYMENT_REJECTED"
	RejectedApplication        ApplicationStatus = "APPLICATION_REJECTED"
	SubmittedApplication       ApplicationStatus = "SUBMITTED"
	ConfirmedApplication       ApplicationStatus = "CONFIRMED"
	ExpiredApplication         ApplicationStatus = "EXPIRED"
)

type PaymentStatus string

const (
	PendingPayment  PaymentStatus = "PENDING"
	VerifiedPayment PaymentStatus = "VERIFIED"
	RejectedPayment PaymentStatus = "REJECTED"
	RefundedPayment PaymentStatus = "REFUNDED"
)

type MaritalStatus string

const (
	SingleMarital   MaritalStatus = "SINGLE"
	MarriedMarital  MaritalStatus = "MARRIED"
	DivorcedMarital MaritalStatus = "DIVORCED"
	WidowedMarital  MaritalStatus = "WIDOWED"
)

// Application is the central entity: one DV lottery entry per user, moved
// through its lifecycle by the owner (draft, payment reference) and by
// admins (verification, rejection, submission relay).
type Application struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	Status ApplicationStatus `gorm:"type:varchar(30);default:'DRAFT';index" json:"status"`

	// Personal identity
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Gender               *string    `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth          *time.Time `json:"date_of_birth"`
	BirthCity            string     `json:"birth_city"`
	BirthCountry         string     `json:"birth_country"`
	CountryOfEligibility string     `json:"country_of_eligibility"`
	PassportNumber       *string    `json:"passport_number"`
	PhotoPath            *string    `json:"photo_path"`

	// Address and contact
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	// Education and family
	EducationLevel     string        `gorm:"type:varchar(60)" json:"education_level"`
	MaritalStatus      MaritalStatus `gorm:"type:varchar(20)" json:"marital_status"`
	SpouseFirstName    *string       `json:"spouse_first_name"`
	SpouseLastName     *string       `json:"spouse_last_name"`
	SpouseDateOfBirth  *time.Time    `json:"spouse_date_of_birth"`
	SpouseBirthCity    *string       `json:"spouse_birth_city"`
	SpouseBirthCountry *string       `json:"spouse_birth_country"`
	SpousePhotoPath    *string       `json:"spouse_photo_path"`

	// Payment tracking
	PaymentStatus     PaymentStatus    `gorm:"type:varchar(20);default:'PENDING'" json:"payment_status"`
	PaymentReference  *string          `gorm:"uniqueIndex:idx_applications_payment_reference,where:payment_reference IS NOT NULL" json:"payment_reference"`
	PaymentAmount     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"payment_amount"`
	PaymentVerifiedAt *time.Time       `json:"payment_verified_at"`
	PaymentVerifiedBy *uuid.UUID       `gorm:"type:uuid" json:"payment_verified_by"`

	// Submission relay
	ConfirmationNumber *string    `gorm:"uniqueIndex:idx_applications_confirmation_number,where:confirmation_number IS NOT NULL" json:"confirmation_number"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	SubmittedBy        *uuid.UUID `gorm:"type:uuid" json:"submitted_by"`

	// Rejection
	RejectionNote *string    `gorm:"type:text" json:"rejection_note"`
	RejectedAt    *time.Time `json:"rejected_at"`
	RejectedBy    *uuid.UUID `gorm:"type:uuid" json:"rejected_by"`

	// Relationships
	User     User    `gorm:"foreignKey:UserID" json:"user"`
	Children []Child `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"children,omitempty"`

	// Audit fields
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	UpdatedBy *string        `json:"updated_by"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Child records share the parent application's lifecycle and are removed
// only by cascading deletion of the parent.
type Child struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	FirstName     string     `gorm:"not null" json:"first_name"`
	LastName      string     `gorm:"not null" json:"last_name"`
	Gender        *string    `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	BirthCity     string     `json:"birth_city"`
	BirthCountry  string     `json:"birth_country"`
	PhotoPath     *string    `json:"photo_path"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Application
func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Child
func (c *Child) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// IsFrozen reports whether the application has been relayed to the
// government portal. Frozen rows are rejected by every mutation path.
func (a *Application) IsFrozen() bool {
	return a.Status == SubmittedApplication || a.Status == ConfirmedApplication
}
