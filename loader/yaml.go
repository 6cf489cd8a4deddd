package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/spirecore/types"
)

// fileScenario is the YAML and JSON layout of one scenario.
type fileScenario struct {
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description"`
	Seed           uint64       `yaml:"seed"`
	Ascension      int          `yaml:"ascension"`
	Floor          int          `yaml:"floor"`
	InitialState   initialState `yaml:"initial_state"`
	ActionSequence []string     `yaml:"action_sequence"`
}

type initialState struct {
	Encounter     string         `yaml:"encounter"`
	PlayerHp      int            `yaml:"player_hp"`
	PlayerMaxHp   int            `yaml:"player_max_hp"`
	Gold          int            `yaml:"gold"`
	Deck          []string       `yaml:"deck"`
	Relics        []string       `yaml:"relics"`
	RelicCounters map[string]int `yaml:"relic_counters"`
	Potions       []string       `yaml:"potions"`
}

// decodeYAML reads one scenario per document. JSON files decode the same
// way. Unknown fields are errors.
func decodeYAML(data []byte) ([]types.ScenarioDef, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var defs []types.ScenarioDef
	for {
		var fs fileScenario
		err := dec.Decode(&fs)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(defs)+1, err)
		}
		defs = append(defs, fs.def())
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no scenario documents")
	}
	return defs, nil
}

func (fs fileScenario) def() types.ScenarioDef {
	st := fs.InitialState
	return types.ScenarioDef{
		Name:          fs.Name,
		Description:   fs.Description,
		Seed:          fs.Seed,
		Ascension:     fs.Ascension,
		Floor:         fs.Floor,
		Encounter:     st.Encounter,
		PlayerHp:      st.PlayerHp,
		PlayerMaxHp:   st.PlayerMaxHp,
		Gold:          st.Gold,
		Deck:          st.Deck,
		Relics:        st.Relics,
		RelicCounters: st.RelicCounters,
		Potions:       st.Potions,
		Actions:       fs.ActionSequence,
	}
}
