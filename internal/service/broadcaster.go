package service

// Broadcaster pushes realtime updates to submission watchers (avoids import
// cycle with the WebSocket transport).
type Broadcaster interface {
	BroadcastToSubmission(submissionID string, msgType string, payload interface{})
}
