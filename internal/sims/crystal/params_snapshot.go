package crystal

import (
	"fmt"
	"strconv"

	"crystal-ca/internal/core"
)

// Parameters lists the configuration grouped for display.
func (c Config) Parameters() core.ParameterSnapshot {
	noiseSeed := core.Parameter{Key: "noise_seed", Label: "Noise seed", Type: core.ParamTypeInt, Value: "random"}
	if c.NoiseSeed != nil {
		noiseSeed = int64Param("noise_seed", "Noise seed", *c.NoiseSeed)
	}
	groups := []core.ParameterGroup{
		{
			Name:    "Grid",
			Summary: "Raster dimensions and seeding",
			Params: []core.Parameter{
				intParam("width", "Width", c.Width),
				intParam("height", "Height", c.Height),
				intParam("seeds", "Seed crystals", c.NSeeds),
				intParam("latency_max", "Max growth delay", c.LatencyMax),
			},
		},
		{
			Name: "Crystal",
			Params: []core.Parameter{
				intParam("bright_min", "Brightness min", c.BrightMin),
				intParam("bright_max", "Brightness max", c.BrightMax),
				floatRangeParam("min_speed", "Minimum speed", c.MinSpeed),
			},
		},
		{
			Name: "Noise",
			Params: []core.Parameter{
				floatParam("noise_scale", "Noise scale", c.NoiseScale),
				floatParam("noise_importance", "Noise importance", c.NoiseImportance),
			},
		},
		{
			Name:    "Mutation",
			Summary: "Mutants grow with delay 1 in every direction",
			Params: []core.Parameter{
				floatParam("mut_prob", "Mutation probability", c.MutProb),
				intRangeParam("bright_mut", "Brightness shift", c.BrightMut),
				intRangeParam("latency_mut", "Delay shift", c.LatencyMut),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				int64Param("seed", "Random seed", c.Seed),
				noiseSeed,
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func floatRangeParam(key, label string, r FloatRange) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeRange,
		Value: fmt.Sprintf("[%s, %s)", strconv.FormatFloat(r.Min, 'f', -1, 64), strconv.FormatFloat(r.Max, 'f', -1, 64)),
	}
}

func intRangeParam(key, label string, r IntRange) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeRange,
		Value: fmt.Sprintf("[%d, %d)", r.Min, r.Max),
	}
}
