package models

import "testing"

func TestMoveIntervalSeconds(t *testing.T) {
	s := NewPetSettings()
	if got := s.MoveIntervalSeconds(); got != 5 {
		t.Errorf("default MoveIntervalSeconds() = %d, want 5", got)
	}
	s.SetMoveIntervalSeconds(42)
	if s.MoveInterval != 42000 {
		t.Errorf("MoveInterval = %d, want 42000", s.MoveInterval)
	}
}

func TestClampedMoveInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		want     int
	}{
		{"below range", 0, MinMoveInterval},
		{"lower bound", 1000, 1000},
		{"inside", 7000, 7000},
		{"upper bound", 60000, 60000},
		{"above range", 90000, MaxMoveInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PetSettings{MoveInterval: tt.interval}
			if got := s.ClampedMoveInterval(); got != tt.want {
				t.Errorf("ClampedMoveInterval() = %d, want %d", got, tt.want)
			}
		})
	}
}
