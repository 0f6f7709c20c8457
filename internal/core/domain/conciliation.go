package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConciliationStatus is the workflow state of a conciliation.
type ConciliationStatus string

const (
	ConciliationPending    ConciliationStatus = "PENDING"
	ConciliationInProgress ConciliationStatus = "IN_PROGRESS"
	ConciliationCompleted  ConciliationStatus = "COMPLETED"
	ConciliationCancelled  ConciliationStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s ConciliationStatus) IsTerminal() bool {
	return s == ConciliationCompleted || s == ConciliationCancelled
}

// ConciliationType distinguishes regular document conciliations from tax detraction ones.
type ConciliationType string

const (
	ConciliationDocuments   ConciliationType = "DOCUMENTS"
	ConciliationDetractions ConciliationType = "DETRACTIONS"
)

// ItemStatus is the match state of a single conciliation item.
type ItemStatus string

const (
	ItemPending      ItemStatus = "PENDING"
	ItemMatched      ItemStatus = "MATCHED"
	ItemPartialMatch ItemStatus = "PARTIAL_MATCH"
)

// IsResolved reports whether the item counts as conciliated.
func (s ItemStatus) IsResolved() bool {
	return s == ItemMatched || s == ItemPartialMatch
}

// Conciliation is the unit of reconciliation work, bound to exactly one bank transaction.
type Conciliation struct {
	ConciliationID   string             `json:"conciliationID"`
	CompanyID        string             `json:"companyID"`
	BankAccountID    string             `json:"bankAccountID"`
	TransactionID    string             `json:"transactionID"` // Unique: one conciliation per transaction
	Type             ConciliationType   `json:"type"`
	PeriodStart      time.Time          `json:"periodStart"`
	PeriodEnd        time.Time          `json:"periodEnd"`
	BankBalance      decimal.Decimal    `json:"bankBalance"`
	BookBalance      decimal.Decimal    `json:"bookBalance"`
	Difference       decimal.Decimal    `json:"difference"`
	ToleranceAmount  decimal.Decimal    `json:"toleranceAmount"`
	TotalDocuments   int                `json:"totalDocuments"`
	ConciliatedItems int                `json:"conciliatedItems"`
	PendingItems     int                `json:"pendingItems"`
	Status           ConciliationStatus `json:"status"`
	Notes            string             `json:"notes"`
	CompletedAt      *time.Time         `json:"completedAt,omitempty"`
	AuditFields

	Items []ConciliationItem `json:"items,omitempty"`
}

// ConciliationItem pairs one document with the conciliation's transaction.
type ConciliationItem struct {
	ItemID            string          `json:"itemID"`
	ConciliationID    string          `json:"conciliationID"`
	DocumentID        string          `json:"documentID"`
	DocumentAmount    decimal.Decimal `json:"documentAmount"`
	ConciliatedAmount decimal.Decimal `json:"conciliatedAmount"`
	Difference        decimal.Decimal `json:"difference"`
	Status            ItemStatus      `json:"status"`
	SystemNotes       string          `json:"systemNotes"` // Written by the matching engine
	Notes             string          `json:"notes"`       // Written by people
	AuditFields
}

// ItemCounters are the derived item counters stored on a conciliation.
type ItemCounters struct {
	TotalDocuments   int `json:"totalDocuments"`
	ConciliatedItems int `json:"conciliatedItems"`
	PendingItems     int `json:"pendingItems"`
}

// RecomputeCounters derives the counters from the complete item set.
// conciliated + pending always equals total.
func RecomputeCounters(items []ConciliationItem) ItemCounters {
	counters := ItemCounters{TotalDocuments: len(items)}
	for _, item := range items {
		if item.Status.IsResolved() {
			counters.ConciliatedItems++
		}
	}
	counters.PendingItems = counters.TotalDocuments - counters.ConciliatedItems
	return counters
}

// ApplyCounters copies derived counters onto the conciliation.
func (c *Conciliation) ApplyCounters(counters ItemCounters) {
	c.TotalDocuments = counters.TotalDocuments
	c.ConciliatedItems = counters.ConciliatedItems
	c.PendingItems = counters.PendingItems
}

// AutoConciliationResult summarises one run of the automatic matching engine.
type AutoConciliationResult struct {
	Matched        int `json:"matched"`
	PartialMatches int `json:"partialMatches"`
	Unmatched      int `json:"unmatched"`
	// AlreadyLinked counts candidates skipped because an item for them already exists.
	AlreadyLinked int `json:"alreadyLinked"`
}

// AnyMatch reports whether the run produced at least one item.
func (r AutoConciliationResult) AnyMatch() bool {
	return r.Matched+r.PartialMatches > 0
}

// DocumentSettlement is the balance change applied to one document when a conciliation completes.
type DocumentSettlement struct {
	DocumentID        string
	ConciliatedAmount decimal.Decimal
	PendingAmount     decimal.Decimal
	Status            DocumentStatus
}

// TransactionSettlement is the balance change applied to the bound transaction on completion.
type TransactionSettlement struct {
	TransactionID     string
	ConciliatedAmount decimal.Decimal
	PendingAmount     decimal.Decimal
	Status            TransactionStatus
}
