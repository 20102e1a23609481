package applications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"talent-horizon/internal/domain"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilter_CreditCards(t *testing.T) {
	apps := []domain.CreditCardApplication{
		{ApplicationNumber: "100", Status: domain.CreditCardSubmitted, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			SubmittedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{ApplicationNumber: "200", Status: domain.CreditCardCleared, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com",
			SubmittedAt: time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)},
		{ApplicationNumber: "300", Status: domain.CreditCardCleared, FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil",
			SubmittedAt: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)},
	}

	numbers := func(in []domain.CreditCardApplication) []string {
		var out []string
		for _, a := range in {
			out = append(out, a.ApplicationNumber)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero", Filter{}, []string{"100", "200", "300"}},
		{"status", Filter{Status: "cleared"}, []string{"200", "300"}},
		{"from", Filter{SubmittedFrom: day(2025, 6, 10)}, []string{"200", "300"}},
		{"to is inclusive", Filter{SubmittedTo: day(2025, 6, 10)}, []string{"100", "200"}},
		{"search name", Filter{Search: "  TURING "}, []string{"200"}},
		{"search full name", Filter{Search: "grace hopper"}, []string{"300"}},
		{"search email", Filter{Search: "navy.mil"}, []string{"300"}},
		{"search number", Filter{Search: "100"}, []string{"100"}},
		{"combined", Filter{Status: "cleared", SubmittedTo: day(2025, 6, 10)}, []string{"200"}},
		{"no match", Filter{Status: "rejected"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbers(tt.filter.CreditCards(apps)))
		})
	}
}

func TestFilter_TaxRefunds(t *testing.T) {
	apps := []domain.TaxRefundApplication{
		{ApplicationNumber: "1", Status: domain.TaxRefundFiling},
		{ApplicationNumber: "2", Status: domain.TaxRefundRefundIssued},
	}

	got := Filter{Status: string(domain.TaxRefundRefundIssued)}.TaxRefunds(apps)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "2", got[0].ApplicationNumber)
	}
}
