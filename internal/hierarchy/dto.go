package hierarchy

// OptionsResponse wraps an ordered child set for the refresh endpoints.
type OptionsResponse struct {
	Options []Option `json:"options"`
}
