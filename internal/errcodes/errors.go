package errcodes

import "errors"

var (
	ErrMissingApiToken                 = errors.New("api token is missing")
	ErrUnsupportedOperation            = errors.New("operation is not supported")
	ErrFetchFailed                     = errors.New("failed to fetch pull requests")
	ErrRateLimited                     = errors.New("rate limit retries exhausted")
	ErrMissingRepository               = errors.New("repository is missing")
	ErrMissingOwner                    = errors.New("repository owner is missing")
	ErrRepositoryMustBeInFormOwnerRepo = errors.New("repository must be in the form of 'owner/repo'")
)
