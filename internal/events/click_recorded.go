package events

// ClickRecorded is emitted after a click event is durably stored, for
// downstream analytics consumers.
type ClickRecorded struct {
	EventID    string `json:"eventId"`
	Code       string `json:"code"`
	Country    string `json:"country"`
	Device     string `json:"device"`
	Browser    string `json:"browser"`
	OccurredAt string `json:"occurredAt"`
}
