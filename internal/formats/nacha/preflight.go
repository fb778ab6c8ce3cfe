package nacha

import (
	"github.com/shopspring/decimal"

	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/diag"
)

// maxAmount is the largest per-payment amount the 10-digit cents field can
// carry: $99,999,999.99.
var maxAmount = decimal.RequireFromString("99999999.99")

// Preflight validates b against the NACHA layout before any bytes are
// produced. All problems are collected into one report.
func Preflight(b *models.Batch) *diag.Report {
	r := &diag.Report{}

	if b.OriginDFI == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "origin_dfi",
			"originating DFI identification is required"))
	}
	if b.OriginID == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "origin_id",
			"originator identification (immediate origin) is required"))
	}
	if b.Destination == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "destination",
			"immediate destination is required"))
	}
	if b.SECCode == "" {
		r.Add(diag.New(diag.KindMissingField, "sec_code",
			"standard entry class code is required"))
	}
	if b.FileIDModifier == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "file_id_modifier",
			"file ID modifier is required; allocate one through the sequence store"))
	} else if len(b.FileIDModifier) != 1 || b.FileIDModifier[0] < 'A' || b.FileIDModifier[0] > 'Z' {
		r.Add(diag.New(diag.KindMissingIdentifier, "file_id_modifier",
			"file ID modifier must be a single character A-Z, got %q", b.FileIDModifier))
	}
	if b.Balanced && !banking.ValidABARouting(b.OriginAccount.RoutingNumber) {
		r.Add(diag.New(diag.KindBankAccount, "origin_account.routing_number",
			"balanced files need a valid originator routing number for the offset entry, got %q",
			b.OriginAccount.RoutingNumber))
	}

	for i, p := range b.Payments {
		if p.PartnerName == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_name", i,
				"counterparty name is required"))
		}
		if !banking.ValidABARouting(p.PartnerBank.RoutingNumber) {
			r.Add(diag.ForPayment(diag.KindBankAccount, "partner_bank.routing_number", i,
				"%q is not a valid 9-digit ABA routing number", p.PartnerBank.RoutingNumber))
		}
		if p.PartnerBank.AccountNumber == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_bank.account_number", i,
				"counterparty account number is required"))
		}
		if p.Amount.GreaterThan(maxAmount) {
			r.Add(diag.ForPayment(diag.KindAmountCap, "amount", i,
				"amount %s exceeds the NACHA cap of %s", p.Amount, maxAmount))
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
