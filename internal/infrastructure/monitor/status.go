package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Audit      bool      `json:"audit"`
	AuditSize  int       `json:"audit_size"`
	LastCheck  time.Time `json:"last_check"`
}
