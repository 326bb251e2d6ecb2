package steps

// Summary condenses a step sequence for reports
type Summary struct {
	TotalSteps int           `json:"total_steps"`
	Phases     map[Phase]int `json:"phases"`
	Passes     []int         `json:"passes,omitempty"`
	Final      []float64     `json:"final"`
	Invalid    bool          `json:"invalid,omitempty"`
}

// Summarize counts steps per phase and collects the radix pass exponents.
func Summarize(seq []Step) Summary {
	s := Summary{
		TotalSteps: len(seq),
		Phases:     make(map[Phase]int),
		Final:      []float64{},
		Invalid:    IsError(seq),
	}
	lastExp := 0
	for _, st := range seq {
		s.Phases[st.Phase]++
		if st.Aux.Counting != nil {
			if exp := st.Aux.Counting.DigitExponent; exp != 0 && exp != lastExp {
				s.Passes = append(s.Passes, exp)
				lastExp = exp
			}
		}
	}
	if len(seq) > 0 {
		s.Final = cloneFloats(seq[len(seq)-1].Array)
	}
	return s
}
