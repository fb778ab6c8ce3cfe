package sepa

import (
	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
)

// Variant describes one national flavour of the pain.001 schema. The tree
// shape is shared; variants differ in namespace, address handling, the
// currencies they accept, and the creditor reference schemes they expect.
type Variant struct {
	ID         string
	Namespace  string
	Currencies []string
	// WithAddress includes PstlAdr elements when address data is present.
	// Swedish banks accept (and some demand) their absence.
	WithAddress bool
	// UseBICFI selects the pain.001.001.09 financial institution element
	// name over the .03 one.
	UseBICFI bool
}

var (
	Generic03 = Variant{
		ID:          "pain.001.001.03",
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03",
		Currencies:  []string{"EUR"},
		WithAddress: true,
	}
	Generic09 = Variant{
		ID:          "pain.001.001.09",
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pain.001.001.09",
		Currencies:  []string{"EUR"},
		WithAddress: true,
		UseBICFI:    true,
	}
	German = Variant{
		ID:          "pain.001.001.03.de",
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03.de",
		Currencies:  []string{"EUR"},
		WithAddress: true,
	}
	Austrian = Variant{
		ID:          "pain.001.001.03.austrian.004",
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03.austrian.004",
		Currencies:  []string{"EUR"},
		WithAddress: true,
	}
	Swedish = Variant{
		ID:          "pain.001.001.03.se",
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03",
		Currencies:  []string{"EUR", "SEK"},
		WithAddress: false,
	}
	Swiss = Variant{
		ID:          "pain.001.001.03.ch.02",
		Namespace:   "http://www.six-interbank-clearing.com/de/pain.001.001.03.ch.02.xsd",
		Currencies:  []string{"EUR", "CHF"},
		WithAddress: true,
	}
)

var variantByCountry = map[string]Variant{
	"DE": German,
	"AT": Austrian,
	"SE": Swedish,
	"CH": Swiss,
	"LI": Swiss,
}

// SelectVariant picks the pain.001 flavour for a batch: by the originator
// IBAN's country prefix, then the company's fiscal country, then its
// registered country, defaulting to the generic .03 schema.
func SelectVariant(b *models.Batch) Variant {
	for _, country := range []string{
		banking.IBANCountry(b.OriginAccount.AccountNumber),
		b.FiscalCountry,
		b.RegisteredCountry,
	} {
		if v, ok := variantByCountry[country]; ok {
			return v
		}
		if country != "" {
			break
		}
	}
	return Generic03
}

func (v Variant) allowsCurrency(ccy string) bool {
	for _, c := range v.Currencies {
		if c == ccy {
			return true
		}
	}
	return false
}
