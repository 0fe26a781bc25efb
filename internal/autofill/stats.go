package autofill

// Stats counts the controls a run considered and the ones it changed.
type Stats struct {
	Found  int `json:"fieldsFound"`
	Filled int `json:"fieldsFilled"`
}
