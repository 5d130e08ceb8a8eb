package generator

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/muse/internal/errors"
)

// Pool variants.
const (
	VariantRich    = "rich"
	VariantMinimal = "minimal"
)

// Pools holds the phrase lists prompts are assembled from.
type Pools struct {
	Characters []string `yaml:"characters"`
	Settings   []string `yaml:"settings"`
	Conflicts  []string `yaml:"conflicts"`
	Twists     []string `yaml:"twists"`
}

// DefaultPools returns the rich built-in pools (eight entries each).
func DefaultPools() Pools {
	return Pools{
		Characters: []string{
			"a retired spy who remembers too much",
			"an astronaut who hears colors",
			"a librarian who can read between the lines",
			"a ghost who doesn't know they're dead",
			"a cartographer who maps places that don't exist yet",
			"a child who can pause time for exactly one minute",
			"a detective who solves crimes in their dreams",
			"a robot who collects human laughter",
		},
		Settings: []string{
			"in a city submerged underwater",
			"on a train that never stops",
			"in a library where books rewrite themselves",
			"at the edge of a black hole",
			"in a lighthouse at the end of the world",
			"inside a snow globe on a stranger's desk",
			"in a casino where people bet memories",
			"on a planet where it rains glass",
		},
		Conflicts: []string{
			"they find a key that fits nothing",
			"time begins moving backwards",
			"they discover they're not who they thought",
			"gravity suddenly fails every hour",
			"every lie they tell comes true",
			"their reflection starts giving them orders",
			"the sun refuses to set",
			"a letter arrives from their future self",
		},
		Twists: defaultTwists(),
	}
}

// MinimalPools returns the small built-in pools (four entries each).
func MinimalPools() Pools {
	p := DefaultPools()
	return Pools{
		Characters: p.Characters[:4],
		Settings:   p.Settings[:4],
		Conflicts:  p.Conflicts[:4],
		Twists:     p.Twists[:3],
	}
}

func defaultTwists() []string {
	return []string{
		"The mentor was the villain all along, but for reasons you'd understand.",
		"The magical artifact was never meant to be used; it was a warning.",
		"The spaceship isn't exploring new worlds; it's returning home.",
		"The narrator has been dead since the first chapter.",
		"The enemy they have been fighting is a future version of themselves.",
		"The map was drawn by someone trying to keep people out, not lead them in.",
		"Everyone else in the story already knows how it ends.",
		"The rescue they are waiting for is the thing they should be running from.",
	}
}

// PoolsFor returns the built-in pools for a variant name.
// Unknown names get the rich variant.
func PoolsFor(variant string) Pools {
	if strings.EqualFold(strings.TrimSpace(variant), VariantMinimal) {
		return MinimalPools()
	}
	return DefaultPools()
}

// Validate checks that every pool has at least one usable entry.
func (p Pools) Validate() error {
	checks := []struct {
		name  string
		items []string
	}{
		{"characters", p.Characters},
		{"settings", p.Settings},
		{"conflicts", p.Conflicts},
		{"twists", p.Twists},
	}
	for _, c := range checks {
		if len(c.items) == 0 {
			return errors.NewConfigError("pools."+c.name, "", errors.ErrEmptyPool)
		}
		for i, item := range c.items {
			if strings.TrimSpace(item) == "" {
				return errors.NewConfigError(
					fmt.Sprintf("pools.%s[%d]", c.name, i), "entry is blank", errors.ErrEmptyPool)
			}
		}
	}
	return nil
}

// LoadPools reads pools from a YAML file. Lists missing from the file are
// taken from base; lists present but empty fail validation.
func LoadPools(path string, base Pools) (Pools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pools{}, errors.NewConfigError("pools_file", "cannot read "+path, err)
	}

	var file Pools
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Pools{}, errors.NewConfigError("pools_file", "cannot parse "+path, err)
	}

	if file.Characters == nil {
		file.Characters = base.Characters
	}
	if file.Settings == nil {
		file.Settings = base.Settings
	}
	if file.Conflicts == nil {
		file.Conflicts = base.Conflicts
	}
	if file.Twists == nil {
		file.Twists = base.Twists
	}

	if err := file.Validate(); err != nil {
		return Pools{}, err
	}
	return file, nil
}
