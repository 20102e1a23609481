package domain

import "time"

type TaxRefundStatus string

const (
	TaxRefundSubmitted    TaxRefundStatus = "submitted"
	TaxRefundReview       TaxRefundStatus = "review"
	TaxRefundFiling       TaxRefundStatus = "filing"
	TaxRefundApproved     TaxRefundStatus = "approved"
	TaxRefundRefundIssued TaxRefundStatus = "refund-issued"
	TaxRefundRejected     TaxRefundStatus = "rejected"
)

func (s TaxRefundStatus) Valid() bool {
	switch s {
	case TaxRefundSubmitted, TaxRefundReview, TaxRefundFiling,
		TaxRefundApproved, TaxRefundRefundIssued, TaxRefundRejected:
		return true
	}
	return false
}

const ApplicationTypeTaxRefund = "tax-refund"

type TaxRefundApplication struct {
	ID                string          `json:"id"`
	ApplicationNumber string          `json:"applicationNumber"`
	Type              string          `json:"type"`
	Status            TaxRefundStatus `json:"status"`
	SubmittedAt       time.Time       `json:"submittedAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	TaxYear          int     `json:"taxYear"`
	EmploymentStatus string  `json:"employmentStatus"`
	FilingStatus     string  `json:"filingStatus"`
	EstimatedIncome  float64 `json:"estimatedIncome"`

	EstimatedRefund      float64  `json:"estimatedRefund"`
	ActualRefund         *float64 `json:"actualRefund,omitempty"`
	ServiceFee           float64  `json:"serviceFee"`
	ServiceFeePercentage float64  `json:"serviceFeePercentage"`
	NetRefund            float64  `json:"netRefund"`

	EstimatedCompletionDate *time.Time `json:"estimatedCompletionDate,omitempty"`
	CompletedDate           *time.Time `json:"completedDate,omitempty"`

	TeamNotes *string `json:"teamNotes,omitempty"`
}

type NewTaxRefundApplication struct {
	Status      TaxRefundStatus `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	TaxYear          int     `json:"taxYear"`
	EmploymentStatus string  `json:"employmentStatus"`
	FilingStatus     string  `json:"filingStatus"`
	EstimatedIncome  float64 `json:"estimatedIncome"`

	EstimatedRefund float64  `json:"estimatedRefund"`
	ActualRefund    *float64 `json:"actualRefund,omitempty"`

	EstimatedCompletionDate *time.Time `json:"estimatedCompletionDate,omitempty"`
	CompletedDate           *time.Time `json:"completedDate,omitempty"`

	TeamNotes *string `json:"teamNotes,omitempty"`
}

type TaxRefundPatch struct {
	Status      *TaxRefundStatus `json:"status,omitempty"`
	SubmittedAt *time.Time       `json:"submittedAt,omitempty"`

	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	TaxYear          *int     `json:"taxYear,omitempty"`
	EmploymentStatus *string  `json:"employmentStatus,omitempty"`
	FilingStatus     *string  `json:"filingStatus,omitempty"`
	EstimatedIncome  *float64 `json:"estimatedIncome,omitempty"`

	EstimatedRefund      *float64 `json:"estimatedRefund,omitempty"`
	ActualRefund         *float64 `json:"actualRefund,omitempty"`
	ServiceFee           *float64 `json:"serviceFee,omitempty"`
	ServiceFeePercentage *float64 `json:"serviceFeePercentage,omitempty"`
	NetRefund            *float64 `json:"netRefund,omitempty"`

	EstimatedCompletionDate *time.Time `json:"estimatedCompletionDate,omitempty"`
	CompletedDate           *time.Time `json:"completedDate,omitempty"`

	TeamNotes *string `json:"teamNotes,omitempty"`
}

// RefundChanged reports whether the patch touches a refund amount.
func (p TaxRefundPatch) RefundChanged() bool {
	return p.ActualRefund != nil || p.EstimatedRefund != nil
}

func (p TaxRefundPatch) Apply(app *TaxRefundApplication) {
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
	if p.TaxYear != nil {
		app.TaxYear = *p.TaxYear
	}
	if p.EmploymentStatus != nil {
		app.EmploymentStatus = *p.EmploymentStatus
	}
	if p.FilingStatus != nil {
		app.FilingStatus = *p.FilingStatus
	}
	if p.EstimatedIncome != nil {
		app.EstimatedIncome = *p.EstimatedIncome
	}
	if p.EstimatedRefund != nil {
		app.EstimatedRefund = *p.EstimatedRefund
	}
	if p.ActualRefund != nil {
		app.ActualRefund = clonePtr(p.ActualRefund)
	}
	if p.ServiceFee != nil {
		app.ServiceFee = *p.ServiceFee
	}
	if p.ServiceFeePercentage != nil {
		app.ServiceFeePercentage = *p.ServiceFeePercentage
	}
	if p.NetRefund != nil {
		app.NetRefund = *p.NetRefund
	}
	if p.EstimatedCompletionDate != nil {
		app.EstimatedCompletionDate = clonePtr(p.EstimatedCompletionDate)
	}
	if p.CompletedDate != nil {
		app.CompletedDate = clonePtr(p.CompletedDate)
	}
	if p.TeamNotes != nil {
		app.TeamNotes = clonePtr(p.TeamNotes)
	}
}

// Clone returns a deep copy that shares no pointers with a.
func (a TaxRefundApplication) Clone() TaxRefundApplication {
	a.ActualRefund = clonePtr(a.ActualRefund)
	a.EstimatedCompletionDate = clonePtr(a.EstimatedCompletionDate)
	a.CompletedDate = clonePtr(a.CompletedDate)
	a.TeamNotes = clonePtr(a.TeamNotes)
	return a
}
