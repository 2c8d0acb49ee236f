package payment

type CreateCheckoutRequest struct {
	BookingID int64 `json:"bookingId" binding:"required"`
}

type CreateCheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}
