// Package packaging provides the downstream collaborators the action gate
// dispatches to: a manifest-writing package creator, a manifest-diffing
// comparer, and a sqlite-backed history of created packages.
package packaging

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
)

// Manifest is the immutable record written for every created package.
type Manifest struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Techlib   string         `json:"techlib,omitempty"`
	Values    map[string]any `json:"values"`
	CreatedAt time.Time      `json:"created_at"`
}

func manifestFromRequest(req gate.Request) Manifest {
	techlib, _ := req.Value("techlib")
	name, _ := techlib.(string)
	return Manifest{
		ID:        req.ID(),
		SessionID: req.SessionID(),
		Techlib:   name,
		Values:    req.Values(),
		CreatedAt: req.CreatedAt(),
	}
}

// ReadManifest loads a previously written manifest file.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("packaging: read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("packaging: parse manifest %s: %w", path, err)
	}
	return m, nil
}
