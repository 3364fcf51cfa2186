package types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AnalyzeLeadRequest struct {
	ProjectDescription string `json:"project_description"`
	ClientName         string `json:"client_name"`
	ClientEmail        string `json:"client_email"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

type AddNoteRequest struct {
	Text string `json:"text"`
}

// SetReminderRequest sets or clears a reminder. A null date clears the
// reminder's date.
type SetReminderRequest struct {
	Date *string `json:"date"`
	Note string  `json:"note"`
}
