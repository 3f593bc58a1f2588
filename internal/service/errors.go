package service

import "errors"

// Failure kinds surfaced by the services. The HTTP layer maps these onto
// status classes; the wire response for credential failures deliberately
// does not reveal which factor failed, but the kinds stay distinct here so
// tests can tell them apart.
var (
	ErrInvalidEmail               = errors.New("service: invalid email")
	ErrInvalidPassword            = errors.New("service: invalid password")
	ErrInvalidAuthorizationHeader = errors.New("service: invalid authorization header")
	ErrInvalidAccessToken         = errors.New("service: invalid access token")

	ErrEmailExists = errors.New("service: a user with this email already exists")

	ErrUserNotFound    = errors.New("service: user not found")
	ErrMeetingNotFound = errors.New("service: meeting not found")

	ErrInvalidStudentID               = errors.New("service: requested student does not exist")
	ErrInvalidRoleForRequestedStudent = errors.New("service: requested student is not a Student")

	// ErrStorageTransaction reports a store mutation that matched nothing
	// after existence was already established. Terminal for the request;
	// retrying is the store's concern, not ours.
	ErrStorageTransaction = errors.New("service: storage transaction failed")
)
