package dto

import (
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain-specific binding tags used by the request DTOs:
//
//	doctype   - a known domain.DocumentType
//	subdiario - a CONCAR sub-diary selector ("15" or "11")
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("doctype", validateDocumentType); err != nil {
		return err
	}
	return v.RegisterValidation("subdiario", validateSubDiario)
}

func validateDocumentType(fl validator.FieldLevel) bool {
	switch domain.DocumentType(fl.Field().String()) {
	case domain.Invoice, domain.ReceiptForFees, domain.CreditNote, domain.DebitNote:
		return true
	}
	return false
}

func validateSubDiario(fl validator.FieldLevel) bool {
	_, ok := domain.DocumentTypeForSubDiario(fl.Field().String())
	return ok
}
