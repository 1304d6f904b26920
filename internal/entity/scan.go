package entity

import "time"

// SeaweedSpecies is the reference list of cultivated species.
type SeaweedSpecies struct {
	SpeciesID   uint       `gorm:"column:species_id;primarykey" json:"species_id"`
	SpeciesName string     `gorm:"column:species_name;type:varchar(255);not null" json:"species_name"`
	Phylum      string     `gorm:"column:phylum;type:varchar(255)" json:"phylum"`
	DateAdded   *time.Time `gorm:"column:date_added" json:"date_added"`
}

func (SeaweedSpecies) TableName() string {
	return "seaweed_species"
}

// ScanReportFresh is a quality scan of fresh seaweed submitted by a farm.
type ScanReportFresh struct {
	ScanID         uint      `gorm:"column:scan_id;primarykey" json:"scan_id"`
	FarmID         uint      `gorm:"column:farm_id;index;not null" json:"farm_id"`
	SpeciesID      uint      `gorm:"column:species_id;index;not null" json:"species_id"`
	HealthStatus   string    `gorm:"column:health_status;type:varchar(100)" json:"health_status"`
	ImpurityStatus string    `gorm:"column:impurity_status;type:varchar(100)" json:"impurity_status"`
	QualityStatus  string    `gorm:"column:quality_status;type:varchar(100)" json:"quality_status"`
	Timestamp      time.Time `gorm:"column:timestamp;index;autoCreateTime" json:"timestamp"`
}

func (ScanReportFresh) TableName() string {
	return "scan_report_fresh"
}

// ScanReportDried is a quality scan of dried seaweed submitted by a farm.
type ScanReportDried struct {
	ScanID         uint      `gorm:"column:scan_id;primarykey" json:"scan_id"`
	FarmID         uint      `gorm:"column:farm_id;index;not null" json:"farm_id"`
	SpeciesID      uint      `gorm:"column:species_id;index;not null" json:"species_id"`
	Appearance     string    `gorm:"column:appearance;type:varchar(100)" json:"appearance"`
	ImpurityStatus string    `gorm:"column:impurity_status;type:varchar(100)" json:"impurity_status"`
	QualityStatus  string    `gorm:"column:quality_status;type:varchar(100)" json:"quality_status"`
	Timestamp      time.Time `gorm:"column:timestamp;index;autoCreateTime" json:"timestamp"`
}

func (ScanReportDried) TableName() string {
	return "scan_report_dried"
}

// MonthlyScanTotal aggregates scan counts per calendar month.
type MonthlyScanTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}
