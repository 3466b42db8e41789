package usecases

// Listing defaults
const DefaultBookingPageLimit = 10
const DefaultServicePageLimit = 0 // 0 returns every match

// Upload limits
const MaxUploadSize = 10 << 20 // 10 MB
