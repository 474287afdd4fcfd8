package auth

// Assertion is a verified identity statement produced by CAS ticket
// validation. It contains facts only, no decisions. Email is the
// natural key; every other field is optional and defaults to empty.
type Assertion struct {
	Email       string
	DisplayName string
	GivenName   string
	Surname     string
	Department  string
	Title       string
}
