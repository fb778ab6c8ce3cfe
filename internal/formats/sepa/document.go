package sepa

import "encoding/xml"

// ISO 20022 customer credit transfer initiation document. One struct tree
// serves every supported variant; optional elements carry omitempty and the
// composer decides what to fill.

type document struct {
	XMLName          xml.Name         `xml:"Document"`
	Xmlns            string           `xml:"xmlns,attr"`
	CstmrCdtTrfInitn cstmrCdtTrfInitn `xml:"CstmrCdtTrfInitn"`
}

type cstmrCdtTrfInitn struct {
	GrpHdr grpHdr   `xml:"GrpHdr"`
	PmtInf []pmtInf `xml:"PmtInf"`
}

type grpHdr struct {
	MsgId    string   `xml:"MsgId"`
	CreDtTm  string   `xml:"CreDtTm"`
	NbOfTxs  int      `xml:"NbOfTxs"`
	CtrlSum  string   `xml:"CtrlSum"`
	InitgPty initgPty `xml:"InitgPty"`
}

type initgPty struct {
	Nm string   `xml:"Nm"`
	Id *partyId `xml:"Id,omitempty"`
}

type partyId struct {
	OrgId orgId `xml:"OrgId"`
}

type orgId struct {
	Othr othrId `xml:"Othr"`
}

type othrId struct {
	Id string `xml:"Id"`
}

type pmtInf struct {
	PmtInfId    string        `xml:"PmtInfId"`
	PmtMtd      string        `xml:"PmtMtd"`
	BtchBookg   bool          `xml:"BtchBookg"`
	NbOfTxs     int           `xml:"NbOfTxs"`
	CtrlSum     string        `xml:"CtrlSum"`
	PmtTpInf    *pmtTpInf     `xml:"PmtTpInf,omitempty"`
	ReqdExctnDt string        `xml:"ReqdExctnDt"`
	Dbtr        party         `xml:"Dbtr"`
	DbtrAcct    account       `xml:"DbtrAcct"`
	DbtrAgt     agent         `xml:"DbtrAgt"`
	ChrgBr      string        `xml:"ChrgBr"`
	CdtTrfTxInf []cdtTrfTxInf `xml:"CdtTrfTxInf"`
}

type pmtTpInf struct {
	SvcLvl *svcLvl `xml:"SvcLvl,omitempty"`
}

type svcLvl struct {
	Cd string `xml:"Cd"`
}

type party struct {
	Nm      string   `xml:"Nm"`
	PstlAdr *pstlAdr `xml:"PstlAdr,omitempty"`
}

type pstlAdr struct {
	Ctry    string   `xml:"Ctry,omitempty"`
	AdrLine []string `xml:"AdrLine,omitempty"`
}

type account struct {
	Id  accountId `xml:"Id"`
	Ccy string    `xml:"Ccy,omitempty"`
}

type accountId struct {
	IBAN string `xml:"IBAN"`
}

type agent struct {
	FinInstnId finInstnId `xml:"FinInstnId"`
}

type finInstnId struct {
	BIC   string `xml:"BIC,omitempty"`
	BICFI string `xml:"BICFI,omitempty"`
}

type cdtTrfTxInf struct {
	PmtId    pmtId   `xml:"PmtId"`
	Amt      amt     `xml:"Amt"`
	CdtrAgt  *agent  `xml:"CdtrAgt,omitempty"`
	Cdtr     party   `xml:"Cdtr"`
	CdtrAcct account `xml:"CdtrAcct"`
	RmtInf   *rmtInf `xml:"RmtInf,omitempty"`
}

type pmtId struct {
	InstrId    string `xml:"InstrId,omitempty"`
	EndToEndId string `xml:"EndToEndId"`
}

type amt struct {
	InstdAmt instdAmt `xml:"InstdAmt"`
}

type instdAmt struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type rmtInf struct {
	Ustrd string `xml:"Ustrd,omitempty"`
	Strd  *strd  `xml:"Strd,omitempty"`
}

type strd struct {
	CdtrRefInf cdtrRefInf `xml:"CdtrRefInf"`
}

type cdtrRefInf struct {
	Tp  refTp  `xml:"Tp"`
	Ref string `xml:"Ref"`
}

type refTp struct {
	CdOrPrtry cdOrPrtry `xml:"CdOrPrtry"`
	Issr      string    `xml:"Issr,omitempty"`
}

type cdOrPrtry struct {
	Cd    string `xml:"Cd,omitempty"`
	Prtry string `xml:"Prtry,omitempty"`
}
