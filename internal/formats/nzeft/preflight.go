package nzeft

import (
	"regexp"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/diag"
)

// NZ bank account: bank (2), branch (4), account body (7), suffix (2-3).
var nzAccountRe = regexp.MustCompile(`^\d{2}-\d{4}-\d{7}-\d{2,3}$`)

// Preflight validates b for emission in the given bank's layout.
func Preflight(b *models.Batch, bank Bank) *diag.Report {
	r := &diag.Report{}

	if _, ok := layouts[bank]; !ok {
		r.Add(diag.New(diag.KindMissingIdentifier, "bank",
			"unsupported NZ EFT bank %q", bank))
	}
	if !nzAccountRe.MatchString(b.OriginAccount.AccountNumber) {
		r.Add(diag.New(diag.KindBankAccount, "origin_account.account_number",
			"%q is not in NZ bank account format BB-BBBB-AAAAAAA-SS", b.OriginAccount.AccountNumber))
	}
	if bank == BankANZ && b.DishonourAccount == "" {
		r.Add(diag.New(diag.KindMissingIdentifier, "dishonour_account",
			"ANZ files need a dishonour account reference on the header row"))
	}

	for i, p := range b.Payments {
		if p.PartnerName == "" {
			r.Add(diag.ForPayment(diag.KindMissingField, "partner_name", i,
				"payee name is required"))
		}
		if !nzAccountRe.MatchString(p.PartnerBank.AccountNumber) {
			r.Add(diag.ForPayment(diag.KindBankAccount, "partner_bank.account_number", i,
				"%q is not in NZ bank account format BB-BBBB-AAAAAAA-SS", p.PartnerBank.AccountNumber))
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
