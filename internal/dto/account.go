package dto

import (
	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// CreateAccountRequest defines the input for registering a GL account.
type CreateAccountRequest struct {
	Code       string      `json:"code" validate:"required"`
	Name       string      `json:"name" validate:"required"`
	NormalSide domain.Side `json:"normalSide" validate:"required,oneof=DEBIT CREDIT"`
}

// UpdateAccountRequest defines the mutable account fields. Nil means unchanged.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// AccountResponse defines the data returned for a GL account.
type AccountResponse struct {
	AccountID  string      `json:"accountID"`
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	NormalSide domain.Side `json:"normalSide"`
	IsActive   bool        `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:  a.AccountID,
		Code:       a.Code,
		Name:       a.Name,
		NormalSide: a.NormalSide,
		IsActive:   a.IsActive,
	}
}
