// Package sepa writes ISO 20022 pain.001 customer credit transfer files in
// the national variants the supported banks accept. The document is a tree
// template: one struct shape, filled per variant, serialized with
// encoding/xml.
package sepa

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/fieldenc"
)

// instrIDMax caps InstrId at 35 bytes after XML escape expansion.
const instrIDMax = 35

// Generate emits the pain.001 document for b in the given variant. Use
// SelectVariant to pick one from the batch. The caller has run Preflight.
func Generate(b *models.Batch, v Variant, now time.Time) ([]byte, error) {
	txs := make([]cdtTrfTxInf, 0, len(b.Payments))
	for i := range b.Payments {
		txs = append(txs, creditTransfer(b, &b.Payments[i], v, i))
	}

	ctrlSum := b.CreditTotal().StringFixed(2)
	doc := document{
		Xmlns: v.Namespace,
		CstmrCdtTrfInitn: cstmrCdtTrfInitn{
			GrpHdr: grpHdr{
				MsgId:   messageID(b),
				CreDtTm: now.Format("2006-01-02T15:04:05"),
				NbOfTxs: len(b.Payments),
				CtrlSum: ctrlSum,
				InitgPty: initgPty{
					Nm: fieldenc.SEPASanitize(b.OriginLongName),
					Id: orgIdentifier(b),
				},
			},
			PmtInf: []pmtInf{{
				PmtInfId:    fieldenc.TruncateEscaped(fieldenc.SEPASanitize(b.Reference), instrIDMax),
				PmtMtd:      "TRF",
				BtchBookg:   true,
				NbOfTxs:     len(b.Payments),
				CtrlSum:     ctrlSum,
				PmtTpInf:    &pmtTpInf{SvcLvl: &svcLvl{Cd: "SEPA"}},
				ReqdExctnDt: b.EffectiveDate.Format("2006-01-02"),
				Dbtr: party{
					Nm:      fieldenc.SEPASanitize(b.OriginLongName),
					PstlAdr: address(v, b.FiscalCountry, nil),
				},
				DbtrAcct: account{
					Id:  accountId{IBAN: banking.NormalizeIBAN(b.OriginAccount.AccountNumber)},
					Ccy: b.Currency,
				},
				DbtrAgt: agentFor(v, b.OriginAccount.RoutingNumber),
				ChrgBr:  "SLEV",
				CdtTrfTxInf: txs,
			}},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal pain.001 document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func creditTransfer(b *models.Batch, p *models.Payment, v Variant, i int) cdtTrfTxInf {
	instrID := fieldenc.SEPASanitize(p.Reference)
	if instrID == "" {
		instrID = fmt.Sprintf("%s-%d", fieldenc.SEPASanitize(b.Reference), i+1)
	}
	instrID = fieldenc.TruncateEscaped(instrID, instrIDMax)

	ccy := p.Currency
	if ccy == "" {
		ccy = b.Currency
	}

	tx := cdtTrfTxInf{
		PmtId: pmtId{
			InstrId:    instrID,
			EndToEndId: instrID,
		},
		Amt: amt{InstdAmt: instdAmt{Ccy: ccy, Value: p.Amount.StringFixed(2)}},
		Cdtr: party{
			Nm:      fieldenc.SEPASanitize(p.PartnerName),
			PstlAdr: address(v, p.PartnerCountry, p.PartnerAddress),
		},
		CdtrAcct: account{Id: accountId{IBAN: banking.NormalizeIBAN(p.PartnerBank.AccountNumber)}},
	}
	if p.PartnerBank.RoutingNumber != "" {
		a := agentFor(v, p.PartnerBank.RoutingNumber)
		tx.CdtrAgt = &a
	}
	if p.Reference != "" && p.ReferenceScheme != "" {
		tx.RmtInf = &rmtInf{Strd: &strd{CdtrRefInf: structuredRef(p)}}
	} else if p.Memo != "" {
		tx.RmtInf = &rmtInf{Ustrd: fieldenc.TruncateEscaped(fieldenc.SEPASanitize(p.Memo), 140)}
	}
	return tx
}

// structuredRef maps the reference scheme onto the CdtrRefInf type element:
// SCOR is the ISO code, QRR and BBA are proprietary scheme names, and the
// Finnish/Norwegian issuer codes ride along as the issuer of an ISO
// reference.
func structuredRef(p *models.Payment) cdtrRefInf {
	ref := cdtrRefInf{Ref: fieldenc.SEPASanitize(p.Reference)}
	switch p.ReferenceScheme {
	case "SCOR":
		ref.Tp.CdOrPrtry.Cd = "SCOR"
	case "QRR", "BBA":
		ref.Tp.CdOrPrtry.Prtry = p.ReferenceScheme
	default:
		ref.Tp.CdOrPrtry.Cd = "SCOR"
		ref.Tp.Issr = p.ReferenceScheme
	}
	return ref
}

func orgIdentifier(b *models.Batch) *partyId {
	if b.OriginID == "" {
		return nil
	}
	return &partyId{OrgId: orgId{Othr: othrId{Id: b.OriginID}}}
}

func agentFor(v Variant, bic string) agent {
	if v.UseBICFI {
		return agent{FinInstnId: finInstnId{BICFI: bic}}
	}
	return agent{FinInstnId: finInstnId{BIC: bic}}
}

func address(v Variant, country string, lines []string) *pstlAdr {
	if !v.WithAddress || (country == "" && len(lines) == 0) {
		return nil
	}
	adr := &pstlAdr{Ctry: country}
	for _, l := range lines {
		adr.AdrLine = append(adr.AdrLine, fieldenc.SEPASanitize(l))
	}
	return adr
}

func messageID(b *models.Batch) string {
	if b.Reference != "" {
		return fieldenc.TruncateEscaped(fieldenc.SEPASanitize(b.Reference), instrIDMax)
	}
	return uuid.NewString()
}

// Filename returns the conventional name for a pain.001 file generated now.
func Filename(b *models.Batch, now time.Time) string {
	return fmt.Sprintf("PAIN001-%s-%s.xml", b.JournalCode, now.Format("200601021504"))
}
