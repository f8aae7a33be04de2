package models

// Move interval bounds in milliseconds. The UI works in whole seconds.
const (
	MinMoveInterval     = 1000
	MaxMoveInterval     = 60000
	DefaultMoveInterval = 5000
)

// PetSettings is the persisted pet configuration record.
// It is stored JSON-encoded under SettingsKey in local key-value storage.
type PetSettings struct {
	AutoMove     bool `json:"autoMove" yaml:"auto_move"`
	MoveInterval int  `json:"moveInterval" yaml:"move_interval"` // milliseconds
	AlwaysOnTop  bool `json:"alwaysOnTop" yaml:"always_on_top"`
	ShowOnStart  bool `json:"showOnStart" yaml:"show_on_start"`
}

// SettingsKey is the storage key of the settings record.
const SettingsKey = "petSettings"

// NewPetSettings creates settings with default values.
func NewPetSettings() *PetSettings {
	return &PetSettings{
		AutoMove:     true,
		MoveInterval: DefaultMoveInterval,
		AlwaysOnTop:  true,
		ShowOnStart:  true,
	}
}

// MoveIntervalSeconds returns the move interval in whole seconds.
func (s *PetSettings) MoveIntervalSeconds() int {
	return s.MoveInterval / 1000
}

// SetMoveIntervalSeconds stores a whole-second interval as milliseconds.
func (s *PetSettings) SetMoveIntervalSeconds(seconds int) {
	s.MoveInterval = seconds * 1000
}

// ClampedMoveInterval returns MoveInterval forced into [MinMoveInterval, MaxMoveInterval].
func (s *PetSettings) ClampedMoveInterval() int {
	switch {
	case s.MoveInterval < MinMoveInterval:
		return MinMoveInterval
	case s.MoveInterval > MaxMoveInterval:
		return MaxMoveInterval
	}
	return s.MoveInterval
}
