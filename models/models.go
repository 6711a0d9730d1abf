package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&Service{},
		&Transaction{},
		&Expense{},
		&Booking{},
		&Settings{},
		&MessageLog{},
	}
}
