package model

// Bank is a node extracted from the raw accounts table, keyed by numeric
// bank ID. When the same ID appears with different names, the last-seen
// name wins.
type Bank struct {
	ID   int
	Name string
}

// Entity is a node extracted from the raw accounts table. Entity IDs stay
// strings; the dataset does not guarantee they are numeric.
type Entity struct {
	ID   string
	Name string
}

// Account is a node keyed by account number, which the dataset treats as
// globally unique across banks.
type Account struct {
	Number string
}

// Ownership links an Entity to an Account it owns.
type Ownership struct {
	EntityID      string
	AccountNumber string
}

// Membership links an Account to the Bank it belongs to.
type Membership struct {
	AccountNumber string
	BankID        int
}
