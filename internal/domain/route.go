package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StopSnapshot is the frozen view of one stop taken at route-save time.
// Only name/address/priority are copied; later edits to the source entity
// never reorder or relabel a saved route.
type StopSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Priority Priority `json:"priority"`
}

// StopSnapshotList stores ordered stop snapshots as a JSON column.
type StopSnapshotList []StopSnapshot

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded list.
//   - error: non-nil if marshaling fails.
func (l StopSnapshotList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (l *StopSnapshotList) Scan(value interface{}) error {
	if value == nil {
		*l = StopSnapshotList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StopSnapshotList")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// SavedRoute is a persisted route: an ordered list of stop snapshots frozen
// at optimization time plus the set of stops already completed.
type SavedRoute struct {
	ID              string           `gorm:"type:text;primaryKey" json:"id"`
	Name            string           `gorm:"type:text;not null" json:"name"`
	Stops           StopSnapshotList `gorm:"type:text" json:"stops"`
	CompletedStops  StringArray      `gorm:"type:text" json:"completed_stops"`
	DistanceMeters  int              `json:"distance_meters"`
	DurationSeconds int              `json:"duration_seconds"`
	CreatedBy       string           `gorm:"type:text" json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName returns the database table name for SavedRoute.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (SavedRoute) TableName() string {
	return "saved_routes"
}

// CompletionPercent returns the share of stops completed, rounded to the
// nearest integer percent. An empty route is 0.
func (r *SavedRoute) CompletionPercent() int {
	if len(r.Stops) == 0 {
		return 0
	}
	done := 0
	for _, s := range r.Stops {
		if r.CompletedStops.Contains(s.ID) {
			done++
		}
	}
	return int(float64(done)/float64(len(r.Stops))*100 + 0.5)
}
