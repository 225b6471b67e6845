// ABOUTME: Authentication contract for resolving caller identity
// ABOUTME: Token verification itself is owned by the external auth system

package interfaces

// TokenVerifier checks a bearer token presented by a client and resolves the
// user it asserts. Minting tokens is the auth collaborator's responsibility;
// this interface only validates the assertion.
type TokenVerifier interface {
	// Verify returns the user ID asserted by the token, or an error if the
	// token is missing, malformed, or fails verification.
	Verify(token string) (string, error)
}
