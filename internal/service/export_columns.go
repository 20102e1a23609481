package service

import (
	"strings"
	"time"

	"talent-horizon/internal/domain"
)

const dateTimeLayout = "2006-01-02 15:04:05"

type CreditCardColumn struct {
	Header string
	Value  func(a domain.CreditCardApplication) any
}

type TaxRefundColumn struct {
	Header string
	Value  func(a domain.TaxRefundApplication) any
}

var defaultCreditCardFields = []string{
	"application_number",
	"status",
	"applicant",
	"bank_name",
	"current_balance",
	"service_fee",
	"submitted_at",
}

var defaultTaxRefundFields = []string{
	"application_number",
	"status",
	"applicant",
	"tax_year",
	"estimated_refund",
	"actual_refund",
	"net_refund",
	"submitted_at",
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func timePtr(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format(dateTimeLayout)
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

var creditCardColumns = map[string]CreditCardColumn{
	"id": {
		Header: "ID",
		Value:  func(a domain.CreditCardApplication) any { return a.ID },
	},
	"application_number": {
		Header: "Application #",
		Value:  func(a domain.CreditCardApplication) any { return a.ApplicationNumber },
	},
	"status": {
		Header: "Status",
		Value:  func(a domain.CreditCardApplication) any { return string(a.Status) },
	},
	"submitted_at": {
		Header: "Submitted",
		Value:  func(a domain.CreditCardApplication) any { return a.SubmittedAt.Format(dateTimeLayout) },
	},
	"applicant": {
		Header: "Applicant",
		Value:  func(a domain.CreditCardApplication) any { return fullName(a.FirstName, a.LastName) },
	},
	"email": {
		Header: "Email",
		Value:  func(a domain.CreditCardApplication) any { return a.Email },
	},
	"phone": {
		Header: "Phone",
		Value:  func(a domain.CreditCardApplication) any { return a.Phone },
	},
	"bank_name": {
		Header: "Bank",
		Value:  func(a domain.CreditCardApplication) any { return a.BankName },
	},
	"card_type": {
		Header: "Card type",
		Value:  func(a domain.CreditCardApplication) any { return a.CardType },
	},
	"card_last4": {
		Header: "Card last 4",
		Value:  func(a domain.CreditCardApplication) any { return a.CardLast4 },
	},
	"credit_limit": {
		Header: "Credit limit",
		Value:  func(a domain.CreditCardApplication) any { return a.CreditLimit },
	},
	"current_balance": {
		Header: "Current balance",
		Value:  func(a domain.CreditCardApplication) any { return a.CurrentBalance },
	},
	"service_fee": {
		Header: "Service fee",
		Value:  func(a domain.CreditCardApplication) any { return a.ServiceFee },
	},
	"service_fee_percentage": {
		Header: "Service fee %",
		Value:  func(a domain.CreditCardApplication) any { return a.ServiceFeePercentage },
	},
	"estimated_clear_date": {
		Header: "Estimated clear date",
		Value:  func(a domain.CreditCardApplication) any { return timePtr(a.EstimatedClearDate) },
	},
	"cleared_date": {
		Header: "Cleared",
		Value:  func(a domain.CreditCardApplication) any { return timePtr(a.ClearedDate) },
	},
	"team_notes": {
		Header: "Team notes",
		Value:  func(a domain.CreditCardApplication) any { return strPtr(a.TeamNotes) },
	},
}

var taxRefundColumns = map[string]TaxRefundColumn{
	"id": {
		Header: "ID",
		Value:  func(a domain.TaxRefundApplication) any { return a.ID },
	},
	"application_number": {
		Header: "Application #",
		Value:  func(a domain.TaxRefundApplication) any { return a.ApplicationNumber },
	},
	"status": {
		Header: "Status",
		Value:  func(a domain.TaxRefundApplication) any { return string(a.Status) },
	},
	"submitted_at": {
		Header: "Submitted",
		Value:  func(a domain.TaxRefundApplication) any { return a.SubmittedAt.Format(dateTimeLayout) },
	},
	"applicant": {
		Header: "Applicant",
		Value:  func(a domain.TaxRefundApplication) any { return fullName(a.FirstName, a.LastName) },
	},
	"email": {
		Header: "Email",
		Value:  func(a domain.TaxRefundApplication) any { return a.Email },
	},
	"phone": {
		Header: "Phone",
		Value:  func(a domain.TaxRefundApplication) any { return a.Phone },
	},
	"tax_year": {
		Header: "Tax year",
		Value:  func(a domain.TaxRefundApplication) any { return a.TaxYear },
	},
	"employment_status": {
		Header: "Employment",
		Value:  func(a domain.TaxRefundApplication) any { return a.EmploymentStatus },
	},
	"filing_status": {
		Header: "Filing status",
		Value:  func(a domain.TaxRefundApplication) any { return a.FilingStatus },
	},
	"estimated_income": {
		Header: "Estimated income",
		Value:  func(a domain.TaxRefundApplication) any { return a.EstimatedIncome },
	},
	"estimated_refund": {
		Header: "Estimated refund",
		Value:  func(a domain.TaxRefundApplication) any { return a.EstimatedRefund },
	},
	"actual_refund": {
		Header: "Actual refund",
		Value: func(a domain.TaxRefundApplication) any {
			if a.ActualRefund == nil {
				return ""
			}
			return *a.ActualRefund
		},
	},
	"service_fee": {
		Header: "Service fee",
		Value:  func(a domain.TaxRefundApplication) any { return a.ServiceFee },
	},
	"service_fee_percentage": {
		Header: "Service fee %",
		Value:  func(a domain.TaxRefundApplication) any { return a.ServiceFeePercentage },
	},
	"net_refund": {
		Header: "Net refund",
		Value:  func(a domain.TaxRefundApplication) any { return a.NetRefund },
	},
	"estimated_completion_date": {
		Header: "Estimated completion",
		Value:  func(a domain.TaxRefundApplication) any { return timePtr(a.EstimatedCompletionDate) },
	},
	"completed_date": {
		Header: "Completed",
		Value:  func(a domain.TaxRefundApplication) any { return timePtr(a.CompletedDate) },
	},
	"team_notes": {
		Header: "Team notes",
		Value:  func(a domain.TaxRefundApplication) any { return strPtr(a.TeamNotes) },
	},
}

// pickColumns resolves field keys against a column map, falling back to the
// defaults when no keys were given. Unknown keys are collected in the error.
func pickColumns[C any](fields, defaults []string, columns map[string]C) ([]C, error) {
	if len(fields) == 0 {
		fields = defaults
	}

	var unknown []string
	cols := make([]C, 0, len(fields))
	for _, key := range fields {
		col, ok := columns[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		cols = append(cols, col)
	}
	if len(unknown) > 0 {
		return nil, &UnknownColumnError{Fields: unknown}
	}
	return cols, nil
}

// UnknownColumnError lists export field keys that have no column.
type UnknownColumnError struct {
	Fields []string
}

func (e *UnknownColumnError) Error() string {
	return "unknown export fields: " + strings.Join(e.Fields, ", ")
}
