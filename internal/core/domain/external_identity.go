package domain

// ExternalIdentity is a verified identity asserted by a federated provider.
type ExternalIdentity struct {
	Provider       AuthProvider
	ProviderUserID string
	Email          string
	EmailVerified  bool
	DisplayName    string
	PhotoURL       string
}
