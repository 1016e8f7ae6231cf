package model

import "time"

// Transaction is one normalized row of the raw transactions table. ID is
// synthesized from the row's position in the source file (1-based data-row
// ordinal) and correlates the node row with its From and To edge rows.
type Transaction struct {
	ID                int64
	Timestamp         string    // raw source value, e.g. "2022/01/05 14:30"
	Time              time.Time // parsed at minute resolution
	FromBank          int
	FromAccount       string
	ToBank            int
	ToAccount         string
	AmountReceived    string // raw source value, validated as a decimal
	ReceivingCurrency string
	AmountPaid        string // raw source value, validated as a decimal
	PaymentCurrency   string
	PaymentFormat     string
	IsLaundering      bool
}
