package applications

import (
	"strings"
	"time"

	"talent-horizon/internal/domain"
)

// Filter narrows a listing. Zero fields match everything. SubmittedTo is
// inclusive of the whole day it names.
type Filter struct {
	Status        string
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
	// Search matches application number, applicant name or email,
	// case-insensitively.
	Search string
}

func (f Filter) IsZero() bool {
	return f.Status == "" && f.SubmittedFrom == nil && f.SubmittedTo == nil && f.Search == ""
}

func (f Filter) match(status string, submitted time.Time, number, first, last, email string) bool {
	if f.Status != "" && status != f.Status {
		return false
	}
	if f.SubmittedFrom != nil && submitted.Before(*f.SubmittedFrom) {
		return false
	}
	if f.SubmittedTo != nil && !submitted.Before(f.SubmittedTo.AddDate(0, 0, 1)) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(strings.TrimSpace(f.Search))
		hay := strings.ToLower(strings.Join([]string{number, first + " " + last, email}, "\n"))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

func (f Filter) CreditCards(apps []domain.CreditCardApplication) []domain.CreditCardApplication {
	if f.IsZero() {
		return apps
	}
	out := make([]domain.CreditCardApplication, 0, len(apps))
	for _, a := range apps {
		if f.match(string(a.Status), a.SubmittedAt, a.ApplicationNumber, a.FirstName, a.LastName, a.Email) {
			out = append(out, a)
		}
	}
	return out
}

func (f Filter) TaxRefunds(apps []domain.TaxRefundApplication) []domain.TaxRefundApplication {
	if f.IsZero() {
		return apps
	}
	out := make([]domain.TaxRefundApplication, 0, len(apps))
	for _, a := range apps {
		if f.match(string(a.Status), a.SubmittedAt, a.ApplicationNumber, a.FirstName, a.LastName, a.Email) {
			out = append(out, a)
		}
	}
	return out
}
