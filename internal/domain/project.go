package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project statuses. The only transition is pending -> approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Project is a submitted restoration-site record tracked from submission
// through credit issuance. Approved projects are immutable: the proof columns
// (tx_hash, minted_at) are written exactly once, together with the status flip.
type Project struct {
	ProjectID      uuid.UUID      `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Location       string         `gorm:"column:location;not null" json:"location"`
	AreaHectares   float64        `gorm:"column:area_hectares;type:decimal(18,2);not null" json:"area_hectares"`
	CreditQuantity float64        `gorm:"column:credit_quantity;type:decimal(18,2);not null" json:"credit_quantity"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	AnalysisNotes  *string        `gorm:"column:analysis_notes" json:"analysis_notes"`
	ImageRef       *string        `gorm:"column:image_ref" json:"image_ref"`
	AnalysisRaw    datatypes.JSON `gorm:"column:analysis_raw;type:jsonb" json:"analysis_raw,omitempty"`
	TxHash         *string        `gorm:"column:tx_hash" json:"tx_hash"`
	MintedAt       *time.Time     `gorm:"column:minted_at" json:"minted_at"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Project) TableName() string {
	return "Projects"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	return nil
}

// Proof is the transaction identifier and timestamp bound to a project on
// successful minting.
type Proof struct {
	TransactionID string    `json:"transaction_id"`
	MintedAt      time.Time `json:"minted_at"`
}
