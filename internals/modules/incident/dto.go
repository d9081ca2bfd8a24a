package incident

// Payload is the inbound incident request. It is untrusted until it went
// through ParseIncidentPayload.
type Payload struct {
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	Tags          []string `json:"tags"`
	Labels        []string `json:"labels"`
	Impact        string   `json:"impact"`
	IsMaintenance bool     `json:"isMaintenance"`
	IsIdentified  bool     `json:"isIdentified"`
	IsResolved    bool     `json:"isResolved"`
	StartDatetime *int64   `json:"startDatetime"`
	EndDatetime   *int64   `json:"endDatetime"`
}
