package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"talent-horizon/internal/applications"
	"talent-horizon/internal/domain"
	"talent-horizon/internal/service"
)

const maxBodyBytes = 1 << 20

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// decodeJSON reads the request body into dst. An empty body is accepted only
// when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		if allowEmpty {
			return nil
		}
		return &ValidationError{Field: "body", Message: "request body is required"}
	default:
		return &ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
}

type rawExportRequest struct {
	CreditCardFields interface{} `json:"credit_card_fields"`
	TaxRefundFields  interface{} `json:"tax_refund_fields"`
}

// ValidateExportRequest accepts each field list as a JSON array or a
// comma-separated string. A missing body selects the default columns.
func ValidateExportRequest(r *http.Request) (*service.ExportRequest, error) {
	var raw rawExportRequest
	if err := decodeJSON(r, &raw, true); err != nil {
		return nil, err
	}

	cc, err := toStringSlice(raw.CreditCardFields)
	if err != nil {
		return nil, &ValidationError{Field: "credit_card_fields", Message: "credit_card_fields must be an array of strings or empty"}
	}
	tr, err := toStringSlice(raw.TaxRefundFields)
	if err != nil {
		return nil, &ValidationError{Field: "tax_refund_fields", Message: "tax_refund_fields must be an array of strings or empty"}
	}

	return &service.ExportRequest{CreditCardFields: cc, TaxRefundFields: tr}, nil
}

// ParseListFilter reads status, submitted_from, submitted_to and search from
// the query string. valid checks the status against the collection's
// lifecycle.
func ParseListFilter(r *http.Request, valid func(status string) bool) (applications.Filter, error) {
	q := r.URL.Query()
	f := applications.Filter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if f.Status != "" && !valid(f.Status) {
		return f, &ValidationError{Field: "status", Message: "unknown status " + strconv.Quote(f.Status)}
	}

	var err error
	if f.SubmittedFrom, err = toDatePtr(q.Get("submitted_from")); err != nil {
		return f, &ValidationError{Field: "submitted_from", Message: "submitted_from must be YYYY-MM-DD or empty"}
	}
	if f.SubmittedTo, err = toDatePtr(q.Get("submitted_to")); err != nil {
		return f, &ValidationError{Field: "submitted_to", Message: "submitted_to must be YYYY-MM-DD or empty"}
	}
	if f.SubmittedFrom != nil && f.SubmittedTo != nil && f.SubmittedTo.Before(*f.SubmittedFrom) {
		return f, &ValidationError{Field: "submitted_to", Message: "submitted_to must not be before submitted_from"}
	}
	return f, nil
}

func validateApplicant(first, last, email string) error {
	if strings.TrimSpace(first) == "" {
		return &ValidationError{Field: "firstName", Message: "firstName is required"}
	}
	if strings.TrimSpace(last) == "" {
		return &ValidationError{Field: "lastName", Message: "lastName is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "email must be a valid address"}
	}
	return nil
}

func validateAmount(field string, v *float64) error {
	if v != nil && *v < 0 {
		return &ValidationError{Field: field, Message: field + " must not be negative"}
	}
	return nil
}

func validateCardLast4(v string) error {
	if v == "" {
		return nil
	}
	if len(v) != 4 || strings.Trim(v, "0123456789") != "" {
		return &ValidationError{Field: "cardLast4", Message: "cardLast4 must be 4 digits"}
	}
	return nil
}

func validateTaxYear(year int) error {
	if year == 0 {
		return nil
	}
	if year < 1900 || year > time.Now().Year()+1 {
		return &ValidationError{Field: "taxYear", Message: "taxYear is out of range"}
	}
	return nil
}

func ValidateNewCreditCard(in domain.NewCreditCardApplication) error {
	if err := validateApplicant(in.FirstName, in.LastName, in.Email); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + strconv.Quote(string(in.Status))}
	}
	if err := validateCardLast4(in.CardLast4); err != nil {
		return err
	}
	if err := validateAmount("creditLimit", &in.CreditLimit); err != nil {
		return err
	}
	return validateAmount("currentBalance", &in.CurrentBalance)
}

func ValidateCreditCardPatch(p domain.CreditCardPatch) error {
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + strconv.Quote(string(*p.Status))}
	}
	if p.Email != nil {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return &ValidationError{Field: "email", Message: "email must be a valid address"}
		}
	}
	if p.CardLast4 != nil {
		if err := validateCardLast4(*p.CardLast4); err != nil {
			return err
		}
	}
	for _, a := range []struct {
		field string
		v     *float64
	}{
		{"creditLimit", p.CreditLimit},
		{"currentBalance", p.CurrentBalance},
		{"serviceFee", p.ServiceFee},
		{"serviceFeePercentage", p.ServiceFeePercentage},
	} {
		if err := validateAmount(a.field, a.v); err != nil {
			return err
		}
	}
	return nil
}

func ValidateNewTaxRefund(in domain.NewTaxRefundApplication) error {
	if err := validateApplicant(in.FirstName, in.LastName, in.Email); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + strconv.Quote(string(in.Status))}
	}
	if err := validateTaxYear(in.TaxYear); err != nil {
		return err
	}
	if err := validateAmount("estimatedIncome", &in.EstimatedIncome); err != nil {
		return err
	}
	if err := validateAmount("estimatedRefund", &in.EstimatedRefund); err != nil {
		return err
	}
	return validateAmount("actualRefund", in.ActualRefund)
}

func ValidateTaxRefundPatch(p domain.TaxRefundPatch) error {
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + strconv.Quote(string(*p.Status))}
	}
	if p.Email != nil {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return &ValidationError{Field: "email", Message: "email must be a valid address"}
		}
	}
	if p.TaxYear != nil {
		if err := validateTaxYear(*p.TaxYear); err != nil {
			return err
		}
	}
	for _, a := range []struct {
		field string
		v     *float64
	}{
		{"estimatedIncome", p.EstimatedIncome},
		{"estimatedRefund", p.EstimatedRefund},
		{"actualRefund", p.ActualRefund},
		{"serviceFee", p.ServiceFee},
		{"serviceFeePercentage", p.ServiceFeePercentage},
	} {
		if err := validateAmount(a.field, a.v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateProfileItem checks the one field each profile list entry cannot
// do without.
func ValidateProfileItem(v any) error {
	required := func(field, value string) error {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: field, Message: field + " is required"}
		}
		return nil
	}

	switch it := v.(type) {
	case domain.Skill:
		return required("name", it.Name)
	case domain.Experience:
		return required("title", it.Title)
	case domain.Education:
		return required("school", it.School)
	case domain.Certification:
		return required("name", it.Name)
	case domain.PortfolioProject:
		return required("title", it.Title)
	case domain.Language:
		return required("language", it.Language)
	}
	return nil
}

func parseIndex(raw string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, &ValidationError{Field: "index", Message: "index must be a non-negative integer"}
	}
	return i, nil
}

func toStringSlice(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		var out []string
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, &ValidationError{Message: "invalid type for string list item"}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ValidationError{Message: "invalid type for string list field"}
	}
}

func toDatePtr(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
