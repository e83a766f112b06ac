// Package auth issues and verifies the bearer tokens that protect the
// studio API when it is reachable beyond the local machine.
//
// Tokens are HS256-signed JWTs. The studio has no user database: anyone
// holding the signing secret mints tokens with "gastudio token", and the
// API accepts any unexpired token signed with that secret.
//
// # Usage
//
//	token, err := auth.GenerateToken("integrator", secret, 12*time.Hour)
//	if err != nil {
//	    return err
//	}
//
//	claims, err := auth.ParseToken(token, secret)
//	if errors.Is(err, auth.ErrTokenExpired) {
//	    // ask for a new token
//	}
package auth
