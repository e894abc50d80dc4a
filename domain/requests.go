package domain

type AddReviewerRequest struct {
	Topic            string `json:"topic"`
	ReviewerName     string `json:"reviewer_name"`
	ReviewerUsername string `json:"reviewer_username"`
}

type ReviewerRequest struct {
	Topic    string `json:"topic"`
	Reviewer string `json:"reviewer"`
}

type SetStatusRequest struct {
	Topic    string         `json:"topic"`
	Reviewer string         `json:"reviewer"`
	Status   ReviewerStatus `json:"status"`
}

type OpenEditorRequest struct {
	Topic string `json:"topic"`
}

type SubmitEditorRequest struct {
	SessionID        string `json:"session_id"`
	ReviewerName     string `json:"reviewer_name"`
	ReviewerUsername string `json:"reviewer_username"`
}

type CancelEditorRequest struct {
	SessionID string `json:"session_id"`
}

type QuestionnaireQuery struct {
	Search  string
	Page    int
	PerPage int
}
