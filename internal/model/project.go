package model

// DefaultProjectColor is used when a project is created without a colour.
const DefaultProjectColor = "#4ECDC4"

// Project groups tasks. Tasks reference it weakly through ProjectID.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
}
