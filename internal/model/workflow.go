package model

// RegistrationRequest is the canonical input of a self-service registration.
type RegistrationRequest struct {
	Kind      IdentityKind
	NaturalID string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegistrationCompletion repeats the registration fields together with the emailed code.
type RegistrationCompletion struct {
	RegistrationRequest
	Code string
}

// CodeDispatch describes a code that was sent. Code is only set when exposure is enabled.
type CodeDispatch struct {
	MaskedEmail string
	TTLMinutes  int
	Code        string
}

// Issued is the terminal result of a successful registration.
type Issued struct {
	Account    Account
	Token      string
	Credential Credential
}

// Session is the result of a successful login.
type Session struct {
	Account Account
	Token   string
}
