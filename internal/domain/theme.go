package domain

// Theme is the presentation context handed to the render layer.
type Theme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	Title          string `json:"title"`
	IconURL        string `json:"icon_url,omitempty"`
}
