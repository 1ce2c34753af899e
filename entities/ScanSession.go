package entities

import "time"

// ScanSession is the public view of a scanner session.
type ScanSession struct {
	ID        string           `json:"id"`
	History   []MedicineRecord `json:"history"`
	ScanCount int              `json:"scanCount"`
	CreatedAt time.Time        `json:"createdAt"`
	LastSeen  time.Time        `json:"lastSeen"`
	Scanning  bool             `json:"scanning"`
}
