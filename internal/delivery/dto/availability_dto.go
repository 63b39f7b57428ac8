package dto

// These two shapes are served without the response envelope.

type AvailableSlotsResponse struct {
	AvailableSlots []string `json:"availableSlots"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
