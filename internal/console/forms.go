package console

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

var forms = validator.New()

// PaymentForm collects a payment before it is sent to the API. The
// bound check against the pending amount happens here as well, so the
// user gets the error before a round trip.
type PaymentForm struct {
	Amount          float64   `validate:"required,gt=0"`
	PaymentDate     time.Time `validate:"required"`
	PaymentMethodID *int64
	BankAccountID   *int64
	Notes           string
}

// Validate checks the form against the record's pending amount.
func (f PaymentForm) Validate(pending float64) error {
	if err := forms.Struct(f); err != nil {
		return httpx.Invalid("payment amount and date are required")
	}
	if f.Amount <= 0 {
		return httpx.Invalid("payment amount must be greater than zero")
	}
	if f.Amount > pending {
		return httpx.Invalid("payment amount exceeds pending amount")
	}
	return nil
}

// Input converts the form to the wire payload.
func (f PaymentForm) Input() models.PaymentInput {
	return models.PaymentInput{
		Amount:          f.Amount,
		PaymentDate:     f.PaymentDate,
		PaymentMethodID: f.PaymentMethodID,
		BankAccountID:   f.BankAccountID,
		Notes:           f.Notes,
	}
}

// RecordForm collects a receivable or payable before submission.
type RecordForm struct {
	Description         string    `validate:"required"`
	TotalAmount         float64   `validate:"required,gt=0"`
	IssueDate           time.Time `validate:"required"`
	DueDate             time.Time `validate:"required"`
	InstallmentCount    int       `validate:"omitempty,min=1"`
	Recurring           bool
	RecurrenceFrequency string `validate:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	RecurrenceDueDay    int    `validate:"omitempty,min=1,max=31"`
	Notes               string
	PartyID             *int64
	CategoryID          *int64
	BankAccountID       *int64
	PaymentMethodID     *int64
}

// Validate checks the form fields.
func (f RecordForm) Validate() error {
	if err := forms.Struct(f); err != nil {
		return httpx.Invalid("description, amount and dates are required")
	}
	if f.Recurring && f.RecurrenceFrequency == "" {
		return httpx.Invalid("recurrence frequency is required for recurring records")
	}
	return nil
}

// ReceivableInput converts the form to a receivable payload.
func (f RecordForm) ReceivableInput() models.ReceivableInput {
	return models.ReceivableInput{
		Description:         f.Description,
		TotalAmount:         f.TotalAmount,
		IssueDate:           f.IssueDate,
		DueDate:             f.DueDate,
		InstallmentCount:    f.InstallmentCount,
		Recurring:           f.Recurring,
		RecurrenceFrequency: f.RecurrenceFrequency,
		RecurrenceDueDay:    f.RecurrenceDueDay,
		Notes:               f.Notes,
		ClientID:            f.PartyID,
		CategoryID:          f.CategoryID,
		BankAccountID:       f.BankAccountID,
		PaymentMethodID:     f.PaymentMethodID,
	}
}

// PayableInput converts the form to a payable payload.
func (f RecordForm) PayableInput() models.PayableInput {
	return models.PayableInput{
		Description:         f.Description,
		TotalAmount:         f.TotalAmount,
		IssueDate:           f.IssueDate,
		DueDate:             f.DueDate,
		InstallmentCount:    f.InstallmentCount,
		Recurring:           f.Recurring,
		RecurrenceFrequency: f.RecurrenceFrequency,
		Notes:               f.Notes,
		SupplierID:          f.PartyID,
		CategoryID:          f.CategoryID,
		BankAccountID:       f.BankAccountID,
		PaymentMethodID:     f.PaymentMethodID,
	}
}
