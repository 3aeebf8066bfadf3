package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed-width fraction keeps lexicographic order equal to creation order.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// Calculation is one persisted savings computation. Rows are written once
// on a successful calculation and never updated or deleted.
type Calculation struct {
	ID        string `gorm:"type:text;primaryKey" json:"id"`
	UserID    string `gorm:"index;not null" json:"user_id"`
	CreatedAt string `json:"created_at"`

	// Inputs
	RaumAnlage        string  `json:"raum_anlage"`
	WrgVorhanden      bool    `json:"wrg_vorhanden"`
	VdotM3h           float64 `json:"vdot_m3h"`
	StrompreisEurKwh  float64 `json:"strompreis_eur_kwh"`
	WaermepreisEurKwh float64 `json:"waermepreis_eur_kwh"`
	ZeitreduktionHD   float64 `json:"zeitreduktion_h_d"`
	BetriebstageDA    float64 `json:"betriebstage_d_a"`

	// Outputs
	WaermeKwhA float64 `json:"waerme_kwh_a"`
	StromKwhA  float64 `json:"strom_kwh_a"`
	EuroA      float64 `json:"euro_a"`
	Co2T       float64 `json:"co2_t"`
}

func (c *Calculation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == "" {
		c.CreatedAt = time.Now().UTC().Format(TimestampFormat)
	}
	return
}
