package handler

import (
	"personreg/internal/person/models"
	dErrors "personreg/pkg/domain-errors"
)

// CreateRequest is the JSON body for POST /persons.
type CreateRequest struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// Validate enforces the transport contract: name and email must be non-empty.
// Age is deliberately unchecked; negative values are accepted.
func (r CreateRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	return nil
}

// UpdateRequest is the JSON body for PUT /persons/{id}. Pointer fields
// distinguish "absent" (nil, leave unchanged) from "present". A JSON null is
// treated the same as an omitted field.
type UpdateRequest struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Email *string `json:"email"`
}

// Validate rejects fields that are present but empty. An entirely empty body
// is valid and results in a no-op update.
func (r UpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name must not be empty")
	}
	if r.Email != nil && *r.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email must not be empty")
	}
	return nil
}

// ToPatch converts the request into the domain patch type.
func (r UpdateRequest) ToPatch() models.Patch {
	return models.Patch{Name: r.Name, Age: r.Age, Email: r.Email}
}
