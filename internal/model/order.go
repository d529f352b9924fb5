package model

// Order is one parsed ride offer. It lives for a single matching pass
// and is never persisted.
type Order struct {
	Price float64 `json:"price"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}
