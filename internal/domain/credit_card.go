package domain

import "time"

type CreditCardStatus string

const (
	CreditCardSubmitted   CreditCardStatus = "submitted"
	CreditCardUnderReview CreditCardStatus = "under-review"
	CreditCardApproved    CreditCardStatus = "approved"
	CreditCardClearing    CreditCardStatus = "clearing"
	CreditCardCleared     CreditCardStatus = "cleared"
	CreditCardRejected    CreditCardStatus = "rejected"
)

func (s CreditCardStatus) Valid() bool {
	switch s {
	case CreditCardSubmitted, CreditCardUnderReview, CreditCardApproved,
		CreditCardClearing, CreditCardCleared, CreditCardRejected:
		return true
	}
	return false
}

const ApplicationTypeCreditCard = "credit-card"

type CreditCardApplication struct {
	ID                string           `json:"id"`
	ApplicationNumber string           `json:"applicationNumber"`
	Type              string           `json:"type"`
	Status            CreditCardStatus `json:"status"`
	SubmittedAt       time.Time        `json:"submittedAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	BankName       string  `json:"bankName"`
	CardType       string  `json:"cardType"`
	CardLast4      string  `json:"cardLast4"`
	CreditLimit    float64 `json:"creditLimit"`
	CurrentBalance float64 `json:"currentBalance"`

	ServiceFee           float64 `json:"serviceFee"`
	ServiceFeePercentage float64 `json:"serviceFeePercentage"`

	EstimatedClearDate *time.Time `json:"estimatedClearDate,omitempty"`
	ClearedDate        *time.Time `json:"clearedDate,omitempty"`

	TeamNotes *string `json:"teamNotes,omitempty"`
}

// NewCreditCardApplication holds the caller-supplied fields of a credit card
// application. Identity and fee fields are assigned by the store.
type NewCreditCardApplication struct {
	Status      CreditCardStatus `json:"status"`
	SubmittedAt time.Time        `json:"submittedAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	BankName       string  `json:"bankName"`
	CardType       string  `json:"cardType"`
	CardLast4      string  `json:"cardLast4"`
	CreditLimit    float64 `json:"creditLimit"`
	CurrentBalance float64 `json:"currentBalance"`

	EstimatedClearDate *time.Time `json:"estimatedClearDate,omitempty"`
	ClearedDate        *time.Time `json:"clearedDate,omitempty"`

	TeamNotes *string `json:"teamNotes,omitempty"`
}

// CreditCardPatch is a partial update; nil fields are left untouched.
type CreditCardPatch struct {
	Status      *CreditCardStatus `json:"status,omitempty"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`

	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	BankName       *string  `json:"bankName,omitempty"`
	CardType       *string  `json:"cardType,omitempty"`
	CardLast4      *string  `json:"cardLast4,omitempty"`
	CreditLimit    *float64 `json:"creditLimit,omitempty"`
	CurrentBalance *float64 `json:"currentBalance,omitempty"`

	ServiceFee           *float64 `json:"serviceFee,omitempty"`
	ServiceFeePercentage *float64 `json:"serviceFeePercentage,omitempty"`

	EstimatedClearDate *time.Time `json:"estimatedClearDate,omitempty"`
	ClearedDate        *time.Time `json:"clearedDate,omitempty"`

	TeamNotes *string `json:"teamNotes,omitempty"`
}

func (p CreditCardPatch) Apply(app *CreditCardApplication) {
	if p.Status != nil {
		app.Status = *p.Status
	}
	if p.SubmittedAt != nil {
		app.SubmittedAt = *p.SubmittedAt
	}
	if p.FirstName != nil {
		app.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		app.LastName = *p.LastName
	}
	if p.Email != nil {
		app.Email = *p.Email
	}
	if p.Phone != nil {
		app.Phone = *p.Phone
	}
	if p.BankName != nil {
		app.BankName = *p.BankName
	}
	if p.CardType != nil {
		app.CardType = *p.CardType
	}
	if p.CardLast4 != nil {
		app.CardLast4 = *p.CardLast4
	}
	if p.CreditLimit != nil {
		app.CreditLimit = *p.CreditLimit
	}
	if p.CurrentBalance != nil {
		app.CurrentBalance = *p.CurrentBalance
	}
	if p.ServiceFee != nil {
		app.ServiceFee = *p.ServiceFee
	}
	if p.ServiceFeePercentage != nil {
		app.ServiceFeePercentage = *p.ServiceFeePercentage
	}
	if p.EstimatedClearDate != nil {
		app.EstimatedClearDate = clonePtr(p.EstimatedClearDate)
	}
	if p.ClearedDate != nil {
		app.ClearedDate = clonePtr(p.ClearedDate)
	}
	if p.TeamNotes != nil {
		app.TeamNotes = clonePtr(p.TeamNotes)
	}
}

// Clone returns a deep copy that shares no pointers with a.
func (a CreditCardApplication) Clone() CreditCardApplication {
	a.EstimatedClearDate = clonePtr(a.EstimatedClearDate)
	a.ClearedDate = clonePtr(a.ClearedDate)
	a.TeamNotes = clonePtr(a.TeamNotes)
	return a
}
