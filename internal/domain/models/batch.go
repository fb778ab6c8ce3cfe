package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction of a money movement as seen from the originator.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// AccountType represents the type of bank account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// SECCode represents Standard Entry Class codes for NACHA
type SECCode string

const (
	SECCodePPD SECCode = "PPD" // Prearranged Payment and Deposit
	SECCodeWEB SECCode = "WEB" // Internet-Initiated Entry
	SECCodeCCD SECCode = "CCD" // Corporate Credit or Debit
	SECCodeTEL SECCode = "TEL" // Telephone-Initiated Entry
	SECCodeARC SECCode = "ARC" // Accounts Receivable Entry
)

// BankAccount identifies one account at one institution. RoutingNumber is
// format specific: a 9-digit ABA number for US payments, an 8+1 digit
// institution/check-digit pair for Canada, a BSB for Australia, an IBAN for
// SEPA (held in AccountNumber with RoutingNumber carrying the BIC).
type BankAccount struct {
	RoutingNumber string
	AccountNumber string
	HolderName    string
	AccountType   AccountType
}

// Payment is one money movement inside a batch. Amount is non-negative;
// Direction says which way the money flows.
type Payment struct {
	Direction       Direction
	Amount          decimal.Decimal
	Currency        string // empty means the batch currency
	ValueDate       time.Time
	PartnerName     string
	PartnerBank     BankAccount
	PartnerID       string // tax number or equivalent, optional
	Memo            string
	Reference       string // structured reference, optional
	ReferenceScheme string // SCOR, QRR, BBA, issuer code; optional
	TransactionCode string // CPA-005 3-digit transaction type
	PartnerCountry  string // ISO 3166 alpha-2, SEPA postal address
	PartnerAddress  []string
}

// Batch is a set of payments emitted as one file. The file-creation
// sequence values (FileCreationNbr, FileIDModifier) are allocated by the
// caller before emission; the emitters treat them as plain input.
type Batch struct {
	JournalCode       string
	EffectiveDate     time.Time
	Reference         string
	OriginShortName   string
	OriginLongName    string
	OriginID          string
	OriginDFI         string
	OriginAccount     BankAccount
	Destination       string
	Currency          string
	DiscretionaryData string
	Balanced          bool
	SECCode           SECCode
	Payments          []Payment

	// Caller-allocated sequence state (see the sequence repository).
	FileCreationNbr int    // CPA-005 FCN, 1..9999 cyclic
	FileIDModifier  string // NACHA single character, "A".."Z"

	// SEPA variant selection falls back to these when the originator IBAN
	// has no usable country prefix.
	FiscalCountry     string
	RegisteredCountry string

	// NZ EFT only: account charged when a payment dishonours (ANZ).
	DishonourAccount string
}

// CreditTotal sums the amounts of all credit payments.
func (b *Batch) CreditTotal() decimal.Decimal {
	return b.totalFor(DirectionCredit)
}

// DebitTotal sums the amounts of all debit payments.
func (b *Batch) DebitTotal() decimal.Decimal {
	return b.totalFor(DirectionDebit)
}

func (b *Batch) totalFor(dir Direction) decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Payments {
		if p.Direction == dir {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// CountFor returns the number of payments moving in the given direction.
func (b *Batch) CountFor(dir Direction) int {
	n := 0
	for _, p := range b.Payments {
		if p.Direction == dir {
			n++
		}
	}
	return n
}
