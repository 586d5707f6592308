package lead

import "errors"

var (
	ErrRateLimited  = errors.New("too many inquiries, try again later")
	ErrSubmitFailed = errors.New("failed to submit inquiry")
	ErrLeadNotFound = errors.New("lead not found")
	ErrForbidden    = errors.New("lead belongs to another manufacturer")
)
