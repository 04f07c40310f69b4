package submit

// Control describes how the submit affordance is presented.
type Control struct {
	Label   string  `json:"label"`
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
	Shadow  bool    `json:"shadow"`
}

// Submit control labels.
const (
	LabelSubmit  = "Submit"
	LabelLoading = "Loading..."
)

// ControlFor derives the submit control from the pipeline state.
func ControlFor(state State) Control {
	if state == StateSubmitting {
		return Control{Label: LabelLoading, Enabled: false, Opacity: 0.5, Shadow: false}
	}
	return Control{Label: LabelSubmit, Enabled: true, Opacity: 1, Shadow: true}
}
