package applications

import "time"

// Application records one completed form submission: which form, for whom,
// and exactly the field values that were written into it.
type Application struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	FormType    string            `json:"formType"`
	Fields      map[string]string `json:"fields"`
	Status      string            `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// StatusSubmitted is the status recorded for a successfully completed run.
const StatusSubmitted = "Submitted"
