package domain

import "time"

// LoanType enumerates the loan products on offer.
type LoanType string

const (
	LoanTypeQuick       LoanType = "QuickLoan"
	LoanTypeAuto        LoanType = "AutoLoan"
	LoanTypeInstallment LoanType = "Installment"
)

// Valid reports whether the loan type is one of the known values.
func (t LoanType) Valid() bool {
	switch t {
	case LoanTypeQuick, LoanTypeAuto, LoanTypeInstallment:
		return true
	}
	return false
}

// Currency enumerates supported loan currencies.
type Currency string

const (
	CurrencyGEL Currency = "GEL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Valid reports whether the currency is one of the known values.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyGEL, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// LoanStatus enumerates lifecycle states for loans. A loan starts in
// Processing; only accountants move it to any other state, and only while
// Processing may the owner edit or delete it.
type LoanStatus string

const (
	LoanStatusProcessing LoanStatus = "Processing"
	LoanStatusApproved   LoanStatus = "Approved"
	LoanStatusRejected   LoanStatus = "Rejected"
)

// Valid reports whether the status is one of the known values.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusProcessing, LoanStatusApproved, LoanStatusRejected:
		return true
	}
	return false
}

// MinLoanAmount is the smallest amount accepted when a loan is requested.
const MinLoanAmount = 500

// Loan is the aggregate for loan requests. Each loan belongs to exactly one
// user.
type Loan struct {
	ID           int64
	UserID       int64
	Type         LoanType
	Amount       float64
	Currency     Currency
	PeriodMonths int
	Status       LoanStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
