package compliance

import (
	"errors"
	"fmt"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrUnknownNote     = errors.New("unknown note reference")
)

// DataUnavailableError means the engine could not run: the company is missing or a
// required read failed. It is never reported as a compliance issue.
type DataUnavailableError struct {
	CompanyId string
	Dataset   string
	Err       error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("compliance data unavailable for company %s (%s): %v", e.CompanyId, e.Dataset, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// IsCompanyNotFound reports whether err means the company does not exist.
func IsCompanyNotFound(err error) bool {
	return errors.Is(err, ErrCompanyNotFound)
}
