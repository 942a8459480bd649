package state

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

type WeatherKind string

const (
	Clear WeatherKind = "clear"
	Fog   WeatherKind = "fog"
	Rain  WeatherKind = "rain"
	Storm WeatherKind = "storm"
)

// Weather is the day's conditions and the modifier they give outdoor work.
type Weather struct {
	Kind     WeatherKind `json:"kind"`
	Modifier int         `json:"modifier"`
}

const (
	weatherFrequency = 0.21
	weatherOctaves   = 3
	weatherLane      = 0.5
)

// seasonDamp lowers every octave of the field, so a damped season skews
// toward rain and storms.
var seasonDamp = map[Season]float64{Winter: 0.08}

// Weather samples the seeded noise field for a day. The same seed and day
// always give the same weather; neighbouring days are correlated.
func (w *World) Weather(day int) Weather {
	noise := opensimplex.NewNormalized(w.WeatherSeed)
	return classifyWeather(dayMoisture(noise, day, w.Season))
}

// dayMoisture walks the day axis of the field, halving the weight and
// doubling the frequency each octave. The result is normalized to the
// first octave's range.
func dayMoisture(noise opensimplex.Noise, day int, season Season) float64 {
	x := float64(day)
	freq, amp := weatherFrequency, 1.0
	var sum, weight float64
	for range weatherOctaves {
		sum += amp * (noise.Eval2(x*freq, weatherLane*freq) - seasonDamp[season])
		weight += amp
		amp /= 2
		freq *= 2
	}
	return sum / weight
}

func classifyWeather(v float64) Weather {
	switch {
	case v < 0.3:
		return Weather{Kind: Storm, Modifier: -10}
	case v < 0.45:
		return Weather{Kind: Rain, Modifier: -5}
	case v < 0.55:
		return Weather{Kind: Fog, Modifier: -2}
	default:
		return Weather{Kind: Clear, Modifier: 5}
	}
}
