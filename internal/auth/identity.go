package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/lilpaoo/jimbo/internal/shared"
)

// DecodeIdentity extracts the claims from a compact identity token
// without verifying its signature. Verification is the backend's job;
// this client only needs the profile fields inside the payload.
//
// Any malformed segment yields a [shared.DecodeError] so callers can
// treat it as a failed login rather than a fault.
func DecodeIdentity(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, &shared.DecodeError{Err: err}
	}
	return claims, nil
}

// Email returns the email claim from a decoded identity, or an error
// when it is absent or empty. A token without an email is not a usable
// identity for this application.
func Email(claims map[string]any) (string, error) {
	v, ok := claims["email"]
	if !ok {
		return "", &shared.DecodeError{Err: fmt.Errorf("no email claim present")}
	}
	email, ok := v.(string)
	if !ok || email == "" {
		return "", &shared.DecodeError{Err: fmt.Errorf("empty email claim")}
	}
	return email, nil
}
