package aba

import (
	"github.com/shopspring/decimal"

	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/diag"
)

const maxPayments = 999997

// maxTotal caps both the per-payment amount and each of the cumulative
// credit/debit totals, from the 10-digit cents fields.
var maxTotal = decimal.RequireFromString("99999999.99")

// Preflight validates b against the ABA layout before emission.
func Preflight(b *models.Batch) *diag.Report {
	r := &diag.Report{}

	if b.OriginID == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "origin_id",
			"APCA user identification number is required"))
	}
	if b.Destination == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "destination",
			"receiving bank abbreviation is required"))
	}
	if b.OriginAccount.AccountNumber == "" {
		r.Add(diag.New(diag.KindMissingField, "origin_account.account_number",
			"originator account number is required for the trace fields"))
	}
	if _, err := banking.NormalizeBSB(b.OriginAccount.RoutingNumber); err != nil {
		r.Add(diag.New(diag.KindBankAccount, "origin_account.routing_number",
			"%v", err))
	}
	if len(b.Payments) > maxPayments {
		r.Add(diag.New(diag.KindCountCap, "payments",
			"%d payments exceed the ABA cap of %d", len(b.Payments), maxPayments))
	}
	if b.CreditTotal().GreaterThan(maxTotal) {
		r.Add(diag.New(diag.KindAmountCap, "credit_total",
			"credit total %s exceeds the ABA cap of %s", b.CreditTotal(), maxTotal))
	}
	if b.DebitTotal().GreaterThan(maxTotal) {
		r.Add(diag.New(diag.KindAmountCap, "debit_total",
			"debit total %s exceeds the ABA cap of %s", b.DebitTotal(), maxTotal))
	}

	for i, p := range b.Payments {
		if p.PartnerName == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_name", i,
				"counterparty name is required"))
		}
		if _, err := banking.NormalizeBSB(p.PartnerBank.RoutingNumber); err != nil {
			r.Add(diag.ForPayment(diag.KindBankAccount, "partner_bank.routing_number", i,
				"%v", err))
		}
		if p.PartnerBank.AccountNumber == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_bank.account_number", i,
				"counterparty account number is required"))
		}
		if p.Amount.GreaterThan(maxTotal) {
			r.Add(diag.ForPayment(diag.KindAmountCap, "amount", i,
				"amount %s exceeds the ABA cap of %s", p.Amount, maxTotal))
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
