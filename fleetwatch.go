package fleetwatch

import "time"

// Vessel is one entry of the global vessel catalog, keyed by IMO number.
// The catalog is owned by the upstream provider and treated as immutable
// reference data.
type Vessel struct {
	IMO           int64   `json:"imoNumber"`
	Name          string  `json:"transportName"`
	TransportType string  `json:"transportType"`
	Flag          string  `json:"flag"`
	GrossTonnage  float64 `json:"grossTonnage"`
	DeadWeight    float64 `json:"deadWeight"`
}

// AisSnapshot is the AIS telemetry attached to a vessel when it is first
// tracked. Geofence fields are maintained by the upstream ingestion pipeline
// and carried through verbatim.
type AisSnapshot struct {
	Name           string    `json:"NAME"`
	Latitude       float64   `json:"LATITUDE"`
	Longitude      float64   `json:"LONGITUDE"`
	Speed          float64   `json:"SPEED"`
	Heading        float64   `json:"HEADING"`
	Destination    string    `json:"DESTINATION"`
	ETA            string    `json:"ETA"`
	Timestamp      time.Time `json:"TIMESTAMP"`
	GeofenceType   string    `json:"geofenceType,omitempty"`
	GeofenceStatus string    `json:"geofenceStatus,omitempty"`
	PullGfType     string    `json:"aisPullGfType,omitempty"`
}

// VesselAisRecord is what the provider returns for a single IMO lookup:
// catalog attributes plus the current AIS sample.
type VesselAisRecord struct {
	Vessel Vessel      `json:"vessel"`
	AIS    AisSnapshot `json:"AIS"`
}

// VesselPage is one page of a catalog search.
type VesselPage struct {
	Vessels []Vessel `json:"vessels"`
	Page    int      `json:"page"`
	HasMore bool     `json:"hasMore"`
}

// Event is the payload published to realtime subscribers.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      any       `json:"body"`
}
