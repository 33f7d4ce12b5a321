// Package presets holds named configurations for common benchmark setups.
package presets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spacemeshos/go-txrecon/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("BUG: preset %s already registered", name))
	}
	presets[name] = conf
}

// Options returns the names of all registered presets.
func Options() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Get returns the preset with the given name.
func Get(name string) (config.Config, error) {
	conf, exist := presets[name]
	if !exist {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one from the options %+s", name, Options())
	}
	return conf, nil
}
