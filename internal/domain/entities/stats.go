package entities

// PlatformStats is the admin dashboard summary
type PlatformStats struct {
	UsersByRole      map[UserRole]int64      `json:"usersByRole"`
	TotalUsers       int64                   `json:"totalUsers"`
	BookingsByStatus map[BookingStatus]int64 `json:"bookingsByStatus"`
	TotalBookings    int64                   `json:"totalBookings"`
	PendingKYC       int64                   `json:"pendingKyc"`
}
