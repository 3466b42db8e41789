package models

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Service{},
		&Booking{},
		&Conversation{},
		&Message{},
		&KYCVerification{},
	}
}
