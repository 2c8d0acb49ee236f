package booking

type CreateBookingRequest struct {
	TurfID      int64   `json:"turf" binding:"required"`
	BookingDate string  `json:"bookingDate" binding:"required"`
	StartTime   string  `json:"startTime" binding:"required"`
	EndTime     string  `json:"endTime" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
