package portfolioservice

import "errors"

// Domain errors for the portfolio service.
// Handlers answer these with a user-facing embed; they are not faults.
var (
	// ErrUserAlreadyExists indicates a user with this Discord ID is already stored.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidDiscordID indicates an empty or non-numeric Discord ID.
	ErrInvalidDiscordID = errors.New("invalid Discord ID")

	// ErrProjectLimitReached indicates the user already owns the maximum number of projects.
	ErrProjectLimitReached = errors.New("project limit reached")

	// ErrProjectExists indicates the user already has a project with this name.
	ErrProjectExists = errors.New("project already exists")

	// ErrProjectNotFound indicates media was attached to a project that does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidInput indicates a required field was empty or malformed.
	ErrInvalidInput = errors.New("invalid input")
)

func isDomainError(err error) bool {
	return errors.Is(err, ErrUserAlreadyExists) ||
		errors.Is(err, ErrInvalidDiscordID) ||
		errors.Is(err, ErrProjectLimitReached) ||
		errors.Is(err, ErrProjectExists) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrInvalidInput)
}
