package coin

// Coin is one entry of the upstream coin catalog. IDs are unique;
// symbols and names are not.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
