package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a signed JWT.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing).
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be sent in an Authorization header.
type Token struct {
	*jwt.Token `json:"-"`

	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Identity is the authenticated principal attached to a request by the
// authentication middleware.
type Identity struct {
	// Strategy is the name of the auth strategy that accepted the request.
	Strategy string `json:"strategy"`
	// Subject is the "sub" claim.
	Subject string `json:"subject"`
	// Claims holds every claim of the verified token.
	Claims jwt.MapClaims `json:"claims"`
}
