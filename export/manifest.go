package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/soypat/vawt/turbine"
)

// Artifact is a file written during a run.
type Artifact struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
	Size  string `json:"size"`
}

// Manifest summarizes one generation run.
type Manifest struct {
	RunID     string         `json:"run_id"`
	Command   string         `json:"command"`
	Created   time.Time      `json:"created"`
	Params    turbine.Params `json:"params"`
	Artifacts []Artifact     `json:"artifacts"`
}

// NewManifest starts a manifest with a fresh short run ID.
func NewManifest(command string, p turbine.Params) *Manifest {
	return &Manifest{
		RunID:   uuid.New().String()[:8],
		Command: command,
		Created: time.Now().UTC(),
		Params:  p,
	}
}

// Add records the file at path, which must already exist.
func (m *Manifest) Add(kind, path string) (Artifact, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("recording %s artifact: %w", kind, err)
	}
	a := Artifact{
		Kind:  kind,
		Path:  path,
		Bytes: fi.Size(),
		Size:  humanize.Bytes(uint64(fi.Size())),
	}
	m.Artifacts = append(m.Artifacts, a)
	return a, nil
}

// TotalSize returns the human readable size of all recorded artifacts.
func (m *Manifest) TotalSize() string {
	var total uint64
	for _, a := range m.Artifacts {
		total += uint64(a.Bytes)
	}
	return humanize.Bytes(total)
}

// Write stores the manifest as indented JSON at path.
func (m *Manifest) Write(path string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ReadManifest loads a manifest written by Write.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := new(Manifest)
	if err := json.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return m, nil
}
