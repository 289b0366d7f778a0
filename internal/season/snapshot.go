package season

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SnapshotVersion tags the snapshot layout. Snapshots carrying any other
// version are rejected.
const SnapshotVersion = 2

// ErrIncompatibleSnapshot is returned for snapshots with a missing or
// mismatched version tag.
var ErrIncompatibleSnapshot = errors.New("incompatible snapshot version")

// MarshalSnapshot encodes the full state.
func (s *State) MarshalSnapshot() ([]byte, error) {
	s.Version = SnapshotVersion
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot produced by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*State, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if probe.Version == nil {
		return nil, fmt.Errorf("%w: missing version tag", ErrIncompatibleSnapshot)
	}
	if *probe.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrIncompatibleSnapshot, *probe.Version, SnapshotVersion)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := s.reindex(); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.UserClub() == nil {
		return nil, fmt.Errorf("decoding snapshot: unknown user club %q", s.UserClubID)
	}
	return &s, nil
}
