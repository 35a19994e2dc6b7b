package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/transition"
	"github.com/quasilyte/gdata"
)

const progressKey = "progress"

// SavedProgress represents the progress data stored on disk
type SavedProgress struct {
	LastLevel string `json:"lastLevel"`
	Scale     int    `json:"scale"`
}

// ItemStore is the subset of *gdata.Manager used for progress storage.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

var progressStore ItemStore

// InitPersistence opens the gdata store for progress storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	progressStore = m
	return nil
}

// SetProgressStore replaces the progress store. A nil store disables
// persistence.
func SetProgressStore(s ItemStore) {
	progressStore = s
}

// LoadProgress loads progress from disk. It returns nil without an error
// when persistence is disabled or nothing was saved yet.
func LoadProgress() (*SavedProgress, error) {
	if progressStore == nil {
		return nil, nil
	}

	data, err := progressStore.LoadItem(progressKey)
	if err != nil {
		log.Printf("Warning: Could not load progress: %v", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var p SavedProgress
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Warning: Could not parse saved progress: %v", err)
		return nil, err
	}
	return &p, nil
}

// SaveProgress saves progress to disk
func SaveProgress(p *SavedProgress) error {
	if progressStore == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Warning: Could not serialize progress: %v", err)
		return err
	}
	if err := progressStore.SaveItem(progressKey, data); err != nil {
		log.Printf("Warning: Could not save progress: %v", err)
		return err
	}
	return nil
}

// AutosaveOnSwitch returns a transition listener that records the level of
// the newly active scene once a switch has happened.
func AutosaveOnSwitch(registry *scenes.Registry, base *SavedProgress) func(from, to transition.Phase) {
	return func(_, to transition.Phase) {
		if to != transition.WaitOneFrame {
			return
		}
		active := registry.Active()
		if active == nil || active.Level == "" || active.Level == base.LastLevel {
			return
		}
		base.LastLevel = active.Level
		_ = SaveProgress(base)
	}
}
