package sepa

import (
	"strings"

	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/diag"
)

// Preflight validates b for emission under variant v.
func Preflight(b *models.Batch, v Variant) *diag.Report {
	r := &diag.Report{}

	if !banking.ValidIBAN(b.OriginAccount.AccountNumber) {
		r.Add(diag.New(diag.KindBankAccount, "origin_account.account_number",
			"%q is not a valid IBAN", b.OriginAccount.AccountNumber))
	}
	if b.OriginLongName == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "origin_long_name",
			"initiating party name is required"))
	}
	if !v.allowsCurrency(b.Currency) {
		r.Add(diag.New(diag.KindCurrencyNotAllowed, "currency",
			"variant %s does not allow %s files (allowed: %s)",
			v.ID, b.Currency, strings.Join(v.Currencies, ", ")))
	}

	for i, p := range b.Payments {
		if p.Direction != models.DirectionCredit {
			r.Add(diag.ForPayment(diag.KindMissingField, "direction", i,
				"pain.001 carries credit transfers only"))
		}
		if p.PartnerName == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_name", i,
				"creditor name is required"))
		}
		if !banking.ValidIBAN(p.PartnerBank.AccountNumber) {
			r.Add(diag.ForPayment(diag.KindBankAccount, "partner_bank.account_number", i,
				"%q is not a valid IBAN", p.PartnerBank.AccountNumber))
		}
		if p.Amount.IsNegative() {
			r.Add(diag.ForPayment(diag.KindAmountCap, "amount", i,
				"amount must not be negative, got %s", p.Amount))
		}
		ccy := p.Currency
		if ccy == "" {
			ccy = b.Currency
		}
		if ccy != b.Currency {
			r.Add(diag.ForPayment(diag.KindCurrencyMismatch, "currency", i,
				"payment currency %s differs from batch currency %s", p.Currency, b.Currency))
		} else if !v.allowsCurrency(ccy) {
			r.Add(diag.ForPayment(diag.KindCurrencyNotAllowed, "currency", i,
				"variant %s does not allow %s payments", v.ID, ccy))
		}
	}

	return r
}
