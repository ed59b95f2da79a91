package services

import "github.com/go-playground/validator/v10"

// validate checks request DTO struct tags before any domain validation runs.
var validate = validator.New(validator.WithRequiredStructEnabled())
