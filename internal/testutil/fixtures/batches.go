// Package fixtures provides ready-made batches for the format family
// tests. Routing numbers and IBANs are valid per their check schemes.
package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// USBatch is two credits totalling $400.00 effective 2020-11-30, sent by
// journal BNK1.
func USBatch() *models.Batch {
	return &models.Batch{
		JournalCode:     "BNK1",
		EffectiveDate:   time.Date(2020, 11, 30, 0, 0, 0, 0, time.UTC),
		Reference:       "PAYMENTS",
		OriginShortName: "ACME",
		OriginLongName:  "ACME CORP",
		OriginID:        "IMM_ORIG",
		OriginDFI:       "11111111",
		OriginAccount: models.BankAccount{
			RoutingNumber: "111111118",
			AccountNumber: "123456789",
			HolderName:    "ACME CORP",
			AccountType:   models.AccountTypeChecking,
		},
		Destination:    "111111118",
		Currency:       "USD",
		SECCode:        models.SECCodeCCD,
		FileIDModifier: "A",
		Payments: []models.Payment{
			{
				Direction:   models.DirectionCredit,
				Amount:      amount("250.00"),
				ValueDate:   time.Date(2020, 11, 30, 0, 0, 0, 0, time.UTC),
				PartnerName: "ALPHA SUPPLIES",
				PartnerBank: models.BankAccount{
					RoutingNumber: "091000019",
					AccountNumber: "987654321",
					AccountType:   models.AccountTypeChecking,
				},
				PartnerID: "VEND-0001",
			},
			{
				Direction:   models.DirectionCredit,
				Amount:      amount("150.00"),
				ValueDate:   time.Date(2020, 11, 30, 0, 0, 0, 0, time.UTC),
				PartnerName: "BETA SERVICES",
				PartnerBank: models.BankAccount{
					RoutingNumber: "011000015",
					AccountNumber: "246813579",
					AccountType:   models.AccountTypeSavings,
				},
				PartnerID: "VEND-0002",
			},
		},
	}
}

// CABatch is two Canadian credits dated 2024-05-25 with FCN 1.
func CABatch() *models.Batch {
	return &models.Batch{
		JournalCode:     "CEFT",
		EffectiveDate:   time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
		Reference:       "PAYMENTS 250524",
		OriginShortName: "ACME",
		OriginLongName:  "ACME CANADA LTD",
		OriginID:        "ACME000001",
		OriginAccount: models.BankAccount{
			RoutingNumber: "111111118",
			AccountNumber: "400123456789",
			HolderName:    "ACME CANADA LTD",
		},
		Destination:     "00330",
		Currency:        "CAD",
		FileCreationNbr: 1,
		Payments: []models.Payment{
			{
				Direction:       models.DirectionCredit,
				Amount:          amount("1200.50"),
				ValueDate:       time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
				PartnerName:     "NORTHERN SUPPLY CO",
				TransactionCode: "450",
				PartnerBank: models.BankAccount{
					RoutingNumber: "091000019",
					AccountNumber: "555666777",
				},
			},
			{
				Direction:       models.DirectionCredit,
				Amount:          amount("99.49"),
				ValueDate:       time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
				PartnerName:     "PRAIRIE TOOLS INC",
				TransactionCode: "450",
				PartnerBank: models.BankAccount{
					RoutingNumber: "011000015",
					AccountNumber: "888999000",
				},
			},
		},
	}
}

// AUBatch is a $400.00 credit run (two payments) from BSB 062-134.
func AUBatch() *models.Batch {
	return &models.Batch{
		JournalCode:     "ABA1",
		EffectiveDate:   time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC),
		Reference:       "PAYMENTS",
		OriginShortName: "ACME AU",
		OriginLongName:  "ACME AUSTRALIA PTY LTD",
		OriginID:        "123456",
		OriginAccount: models.BankAccount{
			RoutingNumber: "062-134",
			AccountNumber: "91345768",
			HolderName:    "ACME AUSTRALIA PTY LTD",
		},
		Destination: "CBA",
		Currency:    "AUD",
		Payments: []models.Payment{
			{
				Direction:   models.DirectionCredit,
				Amount:      amount("250.00"),
				PartnerName: "KOALA PRINTING",
				Reference:   "INV-88",
				PartnerBank: models.BankAccount{
					RoutingNumber: "012-126",
					AccountNumber: "11223344",
				},
			},
			{
				Direction:   models.DirectionCredit,
				Amount:      amount("150.00"),
				PartnerName: "WOMBAT FREIGHT",
				Reference:   "INV-89",
				PartnerBank: models.BankAccount{
					RoutingNumber: "035-987",
					AccountNumber: "55667788",
				},
			},
		},
	}
}

// SEPABatch is one EUR credit transfer from a German account, which
// selects the German pain.001 variant.
func SEPABatch() *models.Batch {
	return &models.Batch{
		JournalCode:    "SEPA",
		EffectiveDate:  time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC),
		Reference:      "BATCH-2024-51",
		OriginLongName: "ACME GMBH",
		OriginAccount: models.BankAccount{
			RoutingNumber: "COBADEFFXXX",
			AccountNumber: "DE89370400440532013000",
			HolderName:    "ACME GMBH",
		},
		Currency:      "EUR",
		FiscalCountry: "DE",
		Payments: []models.Payment{
			{
				Direction:      models.DirectionCredit,
				Amount:         amount("1500.00"),
				PartnerName:    "MUSTER LIEFERANT AG",
				PartnerCountry: "DE",
				Memo:           "Rechnung 2024-1042",
				PartnerBank: models.BankAccount{
					RoutingNumber: "INGDDEFFXXX",
					AccountNumber: "DE24500105171688544432",
				},
			},
		},
	}
}

// NZBatch is two NZD credits from an ANZ account with a dishonour
// account reference.
func NZBatch() *models.Batch {
	return &models.Batch{
		JournalCode:      "NZ01",
		EffectiveDate:    time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC),
		Reference:        "WAGES",
		OriginShortName:  "ACME NZ",
		OriginLongName:   "ACME NEW ZEALAND LTD",
		DishonourAccount: "01-0102-0123456-00",
		OriginAccount: models.BankAccount{
			AccountNumber: "01-0102-0123456-00",
			HolderName:    "ACME NEW ZEALAND LTD",
		},
		Currency: "NZD",
		Payments: []models.Payment{
			{
				Direction:   models.DirectionCredit,
				Amount:      amount("820.75"),
				PartnerName: "J TUI",
				Reference:   "AUG WAGES",
				PartnerBank: models.BankAccount{
					AccountNumber: "06-0541-0771234-00",
				},
			},
			{
				Direction:   models.DirectionCredit,
				Amount:      amount("912.40"),
				PartnerName: "H KEA",
				Reference:   "AUG WAGES",
				PartnerBank: models.BankAccount{
					AccountNumber: "12-3140-0055678-50",
				},
			},
		},
	}
}
