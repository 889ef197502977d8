package domain

// Organization is the externally owned tenant descriptor. AssignShips is the
// number of vessels the organization may track concurrently; read-only here.
type Organization struct {
	OrgID       string `json:"orgId"`
	AssignShips int    `json:"assignShips"`
}
