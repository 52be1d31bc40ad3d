package config

import "sort"

var presets = map[string]*Config{
	"resting": {
		HeartRate: 60, SamplingRate: 500, Gain: 1.0,
		Width: 800, Height: 300, DisplaySeconds: 8,
	},
	"bradycardia": {
		HeartRate: 35, SamplingRate: 500, Gain: 1.0,
		Width: 800, Height: 300, DisplaySeconds: 12,
	},
	"tachycardia": {
		HeartRate: 150, SamplingRate: 500, Gain: 1.0,
		Width: 800, Height: 300, DisplaySeconds: 6,
	},
	"exercise": {
		HeartRate: 120, SamplingRate: 500, Gain: 0.8,
		Width: 800, Height: 300, DisplaySeconds: 8,
	},
	"holter": {
		HeartRate: 72, SamplingRate: 250, Gain: 1.0,
		Width: 800, Height: 300, DisplaySeconds: 30,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
