package models

// SessionIdentity describes the authenticated user as reported by the
// identity provider. It is persisted into the local store under a reserved
// key so a restart can recover the last-known identity before the remote
// session resolves.
type SessionIdentity struct {
	SubjectID   string `json:"subject_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Credential carries the sign-in secret exchanged with the identity
// provider. The provider's wire protocol is opaque to the rest of the
// application.
type Credential struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Profile carries the fields needed to register a new account or update the
// display attributes of an existing one.
type Profile struct {
	Login       string `json:"login"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}
