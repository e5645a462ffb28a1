package domain

import "time"

// MaintenanceErrorType explains why maintenance mode is active.
type MaintenanceErrorType string

const (
	MaintenanceErrorNone     MaintenanceErrorType = ""
	MaintenanceErrorManual   MaintenanceErrorType = "manual"
	MaintenanceErrorDatabase MaintenanceErrorType = "database"
)

// MaintenanceStatus is the outcome of a maintenance check.
type MaintenanceStatus struct {
	Active    bool
	ErrorType MaintenanceErrorType
	CheckedAt time.Time
}
