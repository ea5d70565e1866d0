package model

import "time"

// SubmissionStatus is the lifecycle state of a prompt submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionCompleted SubmissionStatus = "completed"
)

// PromptSubmission is one user-submitted prompt awaiting or having received
// evaluation. Created with status "pending" and a nil feedback; mutated exactly
// once when the external evaluator reports back.
type PromptSubmission struct {
	ID             string           `json:"id" bson:"_id,omitempty"`
	TraineeID      string           `json:"traineeId" bson:"traineeId"`
	SubmitterName  string           `json:"submitterName" bson:"submitter_name"`
	SubmitterEmail string           `json:"submitterEmail,omitempty" bson:"submitter_email,omitempty"`
	PromptText     string           `json:"promptText" bson:"prompt_text"`
	SubmissionType string           `json:"submissionType" bson:"submission_type"`
	AttachmentURLs []string         `json:"attachmentUrls" bson:"attachment_urls"`
	Status         SubmissionStatus `json:"status" bson:"status"`
	Feedback       *string          `json:"feedback" bson:"feedback"`
	CreatedAt      time.Time        `json:"createdAt" bson:"createdAt"`
	EvaluatedAt    *time.Time       `json:"evaluatedAt,omitempty" bson:"evaluatedAt,omitempty"`
}
