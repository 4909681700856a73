package models

// ReservationPlace is the place payload forwarded to the reservation agent.
type ReservationPlace struct {
	Name     string   `json:"name" binding:"required"`
	Vicinity string   `json:"vicinity"`
	PlaceID  string   `json:"place_id,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Types    []string `json:"types,omitempty"`
	Location *LatLng  `json:"location,omitempty"`
}

// ReservationDetails is the diner's contact and slot information.
type ReservationDetails struct {
	PartySize int    `json:"party_size" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// BatchReservationRequest submits one set of details against many places.
type BatchReservationRequest struct {
	PlacesData         []ReservationPlace `json:"places_data"`
	ReservationDetails ReservationDetails `json:"reservation_details" binding:"required"`
}

// ReservationResult is the normalized outcome for one place.
type ReservationResult struct {
	RestaurantName        string `json:"restaurant_name"`
	Location              string `json:"location,omitempty"`
	Status                string `json:"status"`
	ConfirmationNumber    string `json:"confirmation_number,omitempty"`
	PhoneForManualBooking string `json:"phone_for_manual_booking,omitempty"`
	Error                 string `json:"error,omitempty"`
}
