package config

var Presets = map[string]map[string]*Config{
	"cube": {
		"drop": {
			Scene: "cube", Dt: 0.016, Duration: 10.0,
		},
		"soft": {
			Scene: "cube", Dt: 0.008, Duration: 10.0,
			Params: SceneParams{Mass: 2.0, Damping: 0.99},
		},
	},
	"trebuchet": {
		"launch": {
			Scene: "trebuchet", Dt: 0.008, Duration: 15.0,
		},
	},
	"wheel": {
		"roll": {
			Scene: "wheel", Dt: 0.008, Duration: 20.0,
		},
	},
	"pointgrav": {
		"capture": {
			Scene: "pointgrav", Dt: 0.016, Duration: 20.0,
			Params: SceneParams{Damping: 0.999},
		},
	},
	"uplift": {
		"levitate": {
			Scene: "uplift", Dt: 0.016, Duration: 15.0,
		},
	},
	"damping": {
		"compare": {
			Scene: "damping", Dt: 0.016, Duration: 8.0,
		},
	},
	"lighter": {
		"float": {
			Scene: "lighter", Dt: 0.016, Duration: 15.0,
		},
	},
}

func GetPreset(sceneName, preset string) *Config {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	return scenePresets[preset]
}

func ListPresets(sceneName string) []string {
	scenePresets, ok := Presets[sceneName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
