package utils

const (
	StatusStored      = "status stored"
	StatusRetrieved   = "status retrieved"
	TimelineBuilt     = "timeline built"
	IncidentCreated   = "incident created"
	IncidentRetrieved = "incident retrieved"
	CommentsRetrieved = "comments retrieved"
	MonitorsReloaded  = "monitors reloaded"
	ServiceHealthy    = "service healthy"
)
