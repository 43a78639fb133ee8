package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// Domain error kinds. Resolvers map these onto GraphQL error extensions,
// everything else is reported as internal.
var (
	ErrorConflict        = errors.New("conflict")
	ErrorInvalidState    = errors.New("invalid state")
	ErrorInvalidArgument = errors.New("invalid argument")
	ErrorUnauthenticated = errors.New("unauthenticated")
)

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
