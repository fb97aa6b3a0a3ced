package masterweb

import "time"

// Page is what every view receives: the branding, the nav model with the
// current entry marked, and the resolved route (zero for error pages).
type Page struct {
	Site    SiteConfig
	Nav     NavModel
	Route   RouteEntry
	Version string
}

type httpError struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"errorCode"`
}

type sitePayload struct {
	Title           string          `json:"title"`
	Nav             NavModel        `json:"nav"`
	CommunityWidget CommunityWidget `json:"communityWidget"`
}

// masterInfo keeps the field names the client bundle already reads.
type masterInfo struct {
	Hostname string
	MOTD     string
	ID       uint16
	Uptime   time.Time
}
