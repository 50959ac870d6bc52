package iscode

// Action identifies the lateral load case governing a level
type Action string

const (
	ActionNone    Action = ""
	ActionWind    Action = "WIND"
	ActionSeismic Action = "SEISMIC"
)

// LateralMoments holds the overturning moments at a level from each lateral action
type LateralMoments struct {
	Wind    float64 // Moment due to wind (tf·m)
	Seismic float64 // Moment due to earthquake (tf·m)
}

// Envelope returns the design moment as the larger of the wind and seismic
// moments, along with the action that produced it. Wind and earthquake are
// not assumed to act together (IS:4998), so no combined case is formed.
// Ties go to wind; two zero moments govern nothing.
func Envelope(m LateralMoments) (float64, Action) {
	switch {
	case m.Wind == 0 && m.Seismic == 0:
		return 0, ActionNone
	case m.Seismic > m.Wind:
		return m.Seismic, ActionSeismic
	default:
		return m.Wind, ActionWind
	}
}
