package model

import "time"

// SurveyRecord is one field measurement entry (a "levé") made by a surveyor.
// Records are owned by the surveyor who submitted them, referenced by
// username in the Topographe column.
type SurveyRecord struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	Date       time.Time `gorm:"column:date" json:"date"`
	Village    string    `gorm:"column:village" json:"village"`
	Region     string    `gorm:"column:region" json:"region"`
	Commune    string    `gorm:"column:commune" json:"commune"`
	Type       string    `gorm:"column:type" json:"type"`
	Quantite   int       `gorm:"column:quantite" json:"quantite"`
	Appareil   string    `gorm:"column:appareil" json:"appareil"`
	Topographe string    `gorm:"column:topographe" json:"topographe"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyRecord) TableName() string {
	return "leves"
}
