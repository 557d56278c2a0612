package domain

import "time"

// AuthSession is the outcome of a successful sign-in: the principal and an access token for it.
type AuthSession struct {
	Principal   *Principal
	Role        Role
	AccessToken string
	ExpiresAt   time.Time
}
