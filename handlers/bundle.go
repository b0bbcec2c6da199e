// handlers/bundle.go
package handlers

import (
	profileRepoPkg "mentormatch/database/repository/profile"
	userRepoPkg "mentormatch/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration. The repos are carried for the auth middleware.
type HandlerBundle struct {
	UserRepo    userRepoPkg.UserRepository
	ProfileRepo profileRepoPkg.ProfileRepository

	Auth    *AuthHandler
	Profile *ProfileHandler
	Mentor  *MentorHandler
	Booking *BookingHandler
	Session *SessionHandler
	Payment *PaymentHandler
	Review  *ReviewHandler
}
