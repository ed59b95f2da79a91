package domain

// PartyKind discriminates who a journal line concerns.
type PartyKind string

const (
	PartyOwner   PartyKind = "OWNER"
	PartyRenter  PartyKind = "RENTER"
	PartyCompany PartyKind = "COMPANY"
)

// PartyRef identifies the counterparty of a journal line. ID is empty for
// the company itself. Used by owner/renter scoped statements, never by
// balancing.
type PartyRef struct {
	Kind PartyKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

func OwnerRef(id string) PartyRef  { return PartyRef{Kind: PartyOwner, ID: id} }
func RenterRef(id string) PartyRef { return PartyRef{Kind: PartyRenter, ID: id} }
func CompanyRef() PartyRef         { return PartyRef{Kind: PartyCompany} }

// Equal reports whether two refs identify the same party.
func (p PartyRef) Equal(other PartyRef) bool {
	return p.Kind == other.Kind && p.ID == other.ID
}

// SubjectKind discriminates what business event generated a journal line.
type SubjectKind string

const (
	SubjectInvoice         SubjectKind = "INVOICE"
	SubjectPayment         SubjectKind = "PAYMENT"
	SubjectMaintenance     SubjectKind = "MAINTENANCE"
	SubjectRentAgreement   SubjectKind = "RENT_AGREEMENT"
	SubjectSecurityDeposit SubjectKind = "SECURITY_DEPOSIT"
	SubjectOther           SubjectKind = "OTHER"
)

// SubjectRef tags a journal line with its originating business record. It is
// traceability and matching metadata only; balancing ignores it. Label is
// set only for SubjectOther.
type SubjectRef struct {
	Kind  SubjectKind `json:"kind"`
	ID    string      `json:"id,omitempty"`
	Label string      `json:"label,omitempty"`
}

func InvoiceRef(id string) SubjectRef       { return SubjectRef{Kind: SubjectInvoice, ID: id} }
func PaymentRef(id string) SubjectRef       { return SubjectRef{Kind: SubjectPayment, ID: id} }
func MaintenanceRef(id string) SubjectRef   { return SubjectRef{Kind: SubjectMaintenance, ID: id} }
func RentAgreementRef(id string) SubjectRef { return SubjectRef{Kind: SubjectRentAgreement, ID: id} }
func SecurityDepositRef(id string) SubjectRef {
	return SubjectRef{Kind: SubjectSecurityDeposit, ID: id}
}
func OtherRef(label string) SubjectRef { return SubjectRef{Kind: SubjectOther, Label: label} }

// Equal reports whether two refs identify the same subject.
func (s SubjectRef) Equal(other SubjectRef) bool {
	return s.Kind == other.Kind && s.ID == other.ID && s.Label == other.Label
}

// EligibleForAutoMatch reports whether lines tagged with this subject take
// part in the automatic settlement pass after posting. Only invoice/payment
// pairs do; maintenance, agreements and deposits reconcile manually.
func (s SubjectRef) EligibleForAutoMatch() bool {
	return s.Kind == SubjectInvoice || s.Kind == SubjectPayment
}
