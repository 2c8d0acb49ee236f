package catalog

type CreateTurfRequest struct {
	Name         string   `json:"name" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	PricePerHour float64  `json:"pricePerHour" binding:"required"`
	Size         string   `json:"size"`
	ImageURL     string   `json:"image"`
	Description  string   `json:"description"`
	Facilities   []string `json:"facilities"`
}

// UpdateTurfRequest updates only the fields that are present.
type UpdateTurfRequest struct {
	Name         *string   `json:"name"`
	Location     *string   `json:"location"`
	PricePerHour *float64  `json:"pricePerHour"`
	Size         *string   `json:"size"`
	ImageURL     *string   `json:"image"`
	Description  *string   `json:"description"`
	Facilities   *[]string `json:"facilities"`
}
