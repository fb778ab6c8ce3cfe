package cpa005

import (
	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/diag"
)

// Preflight validates b against the CPA-005 layout before emission.
func Preflight(b *models.Batch) *diag.Report {
	r := &diag.Report{}

	if b.OriginID == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "origin_id",
			"originator identification is required"))
	}
	if b.FileCreationNbr < 1 || b.FileCreationNbr > 9999 {
		r.Add(diag.New(diag.KindMissingIdentifier, "file_creation_nbr",
			"file creation number must be in 1..9999, got %d", b.FileCreationNbr))
	}
	if !banking.ValidABARouting(b.OriginAccount.RoutingNumber) {
		r.Add(diag.New(diag.KindBankAccount, "origin_account.routing_number",
			"%q is not a valid 9-digit routing number", b.OriginAccount.RoutingNumber))
	}

	for i, p := range b.Payments {
		if p.TransactionCode == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "transaction_code", i,
				"CPA transaction type code is required"))
		}
		if p.PartnerName == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_name", i,
				"counterparty name is required"))
		}
		if !banking.ValidABARouting(p.PartnerBank.RoutingNumber) {
			r.Add(diag.ForPayment(diag.KindBankAccount, "partner_bank.routing_number", i,
				"%q is not a valid 9-digit routing number", p.PartnerBank.RoutingNumber))
		}
		if p.PartnerBank.AccountNumber == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_bank.account_number", i,
				"counterparty account number is required"))
		}
		if p.Amount.IsNegative() {
			r.Add(diag.ForPayment(diag.KindAmountCap, "amount", i,
				"amount must not be negative, got %s", p.Amount))
		}
		if p.Currency != "" && p.Currency != b.Currency {
			r.Add(diag.ForPayment(diag.KindCurrencyMismatch, "currency", i,
				"payment currency %s differs from batch currency %s", p.Currency, b.Currency))
		}
	}

	return r
}
