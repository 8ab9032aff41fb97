package progress

import (
	"encoding/json"
	"fmt"

	"github.com/tectonhq/tecton/internal/catalog"
)

// Serialized save shape. The field names and gameType strings are the wire
// contract for the progress slot and must stay stable across upgrades, so
// save data written by any build of the app keeps loading.

const snapshotVersion = 1

type snapshotRecord struct {
	Version   int             `json:"version"`
	Volcanoes []volcanoRecord `json:"volcanoes"`
}

type volcanoRecord struct {
	Name     string       `json:"name"`
	Unlocked bool         `json:"unlocked"`
	Order    int          `json:"order"`
	Games    []gameRecord `json:"games"`
}

type gameRecord struct {
	Name      string `json:"name"`
	GameType  string `json:"gameType"`
	Completed bool   `json:"completed"`
}

// encodeSnapshot serializes the full progress list for the save slot.
func encodeSnapshot(list []VolcanoProgress) ([]byte, error) {
	rec := snapshotRecord{
		Version:   snapshotVersion,
		Volcanoes: make([]volcanoRecord, 0, len(list)),
	}
	for _, v := range list {
		vr := volcanoRecord{
			Name:     v.Name,
			Unlocked: v.Unlocked,
			Order:    v.Order,
			Games:    make([]gameRecord, 0, len(v.Games)),
		}
		for _, g := range v.Games {
			vr.Games = append(vr.Games, gameRecord{
				Name:      g.Name,
				GameType:  string(g.Type),
				Completed: g.Completed,
			})
		}
		rec.Volcanoes = append(rec.Volcanoes, vr)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode progress snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot parses a serialized progress snapshot. Unknown gameType
// strings make the record unreadable; corruption is handled by the caller
// falling back to defaults.
func decodeSnapshot(data []byte) ([]VolcanoProgress, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode progress snapshot: %w", err)
	}

	list := make([]VolcanoProgress, 0, len(rec.Volcanoes))
	for _, vr := range rec.Volcanoes {
		vp := VolcanoProgress{
			Name:     vr.Name,
			Unlocked: vr.Unlocked,
			Order:    vr.Order,
			Games:    make([]GameProgress, 0, len(vr.Games)),
		}
		for _, gr := range vr.Games {
			gt, ok := catalog.ParseGameType(gr.GameType)
			if !ok {
				return nil, fmt.Errorf("decode progress snapshot: unknown game type %q", gr.GameType)
			}
			vp.Games = append(vp.Games, GameProgress{
				Name:      gr.Name,
				Type:      gt,
				Completed: gr.Completed,
			})
		}
		list = append(list, vp)
	}
	return list, nil
}

// reconcile overlays a loaded snapshot onto the catalog defaults, matching
// by volcano name and game type. Progress survives content updates that
// reorder or retitle entries; saved entries with no catalog counterpart are
// dropped. The minimum-order volcano stays unlocked whatever the save says.
func reconcile(defaults, loaded []VolcanoProgress) []VolcanoProgress {
	byName := make(map[string]*VolcanoProgress, len(loaded))
	for i := range loaded {
		byName[loaded[i].Name] = &loaded[i]
	}

	for i := range defaults {
		lv, ok := byName[defaults[i].Name]
		if !ok {
			continue
		}
		defaults[i].Unlocked = defaults[i].Unlocked || lv.Unlocked
		for j := range defaults[i].Games {
			if lg := lv.game(defaults[i].Games[j].Type); lg != nil {
				defaults[i].Games[j].Completed = lg.Completed
			}
		}
	}
	return defaults
}
