package models

import "time"

// CategoryKind distinguishes revenue from expense categories.
type CategoryKind string

const (
	CategoryRevenue CategoryKind = "REVENUE"
	CategoryExpense CategoryKind = "EXPENSE"
)

// Category is reference data used to classify records.
type Category struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Kind  CategoryKind `json:"kind"`
	Color string       `json:"color,omitempty"`
	Icon  string       `json:"icon,omitempty"`
	Notes string       `json:"notes,omitempty"`
}

// CategoryInput is the payload for creating or patching a category.
type CategoryInput struct {
	Name  string       `json:"name" validate:"required"`
	Kind  CategoryKind `json:"kind" validate:"required,oneof=REVENUE EXPENSE"`
	Color string       `json:"color,omitempty"`
	Icon  string       `json:"icon,omitempty"`
	Notes string       `json:"notes,omitempty"`
}

// PaymentMethodKind enumerates how a payment method settles.
type PaymentMethodKind string

const (
	PaymentUpfront     PaymentMethodKind = "UPFRONT"
	PaymentInstallment PaymentMethodKind = "INSTALLMENT"
	PaymentRecurring   PaymentMethodKind = "RECURRING"
)

// PaymentMethod is reference data for settlement options.
type PaymentMethod struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Kind   PaymentMethodKind `json:"kind"`
	Active bool              `json:"active"`
}

// PaymentMethodInput is the payload for creating or patching a payment method.
type PaymentMethodInput struct {
	Name   string            `json:"name" validate:"required"`
	Kind   PaymentMethodKind `json:"kind" validate:"required,oneof=UPFRONT INSTALLMENT RECURRING"`
	Active bool              `json:"active"`
}

// BankAccountKind enumerates supported account types.
type BankAccountKind string

const (
	AccountChecking   BankAccountKind = "CHECKING"
	AccountSavings    BankAccountKind = "SAVINGS"
	AccountInvestment BankAccountKind = "INVESTMENT"
)

// BankAccount is a bank account records and payments link to.
type BankAccount struct {
	ID             int64           `json:"id"`
	Bank           string          `json:"bank"`
	Branch         string          `json:"branch"`
	Number         string          `json:"number"`
	Kind           BankAccountKind `json:"kind"`
	InitialBalance float64         `json:"initialBalance"`
	CurrentBalance float64         `json:"currentBalance"`
	PixKey         string          `json:"pixKey,omitempty"`
	Primary        bool            `json:"primary"`
}

// BankAccountInput is the payload for creating or patching a bank account.
type BankAccountInput struct {
	Bank           string          `json:"bank" validate:"required"`
	Branch         string          `json:"branch"`
	Number         string          `json:"number" validate:"required"`
	Kind           BankAccountKind `json:"kind" validate:"required,oneof=CHECKING SAVINGS INVESTMENT"`
	InitialBalance float64         `json:"initialBalance"`
	PixKey         string          `json:"pixKey,omitempty"`
	Primary        bool            `json:"primary"`
}

// Client is a party the business receives money from.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientInput is the payload for creating or patching a client.
type ClientInput struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"taxId,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

// Supplier is a party the business owes money to.
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SupplierInput is the payload for creating or patching a supplier.
type SupplierInput struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"taxId,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

// RecordStatus enumerates receivable/payable/installment statuses.
type RecordStatus string

const (
	StatusPending       RecordStatus = "PENDING"
	StatusPaid          RecordStatus = "PAID"
	StatusOverdue       RecordStatus = "OVERDUE"
	StatusPartiallyPaid RecordStatus = "PARTIALLY_PAID"
)

// Installment is one sub-payment of a multi-part record.
type Installment struct {
	ID          int64        `json:"id"`
	Number      int          `json:"number"`
	Amount      float64      `json:"amount"`
	DueDate     time.Time    `json:"dueDate"`
	PaymentDate *time.Time   `json:"paymentDate,omitempty"`
	Status      RecordStatus `json:"status"`
}

// Receivable is a tracked amount owed to the business.
type Receivable struct {
	ID                  int64         `json:"id"`
	Kind                string        `json:"kind,omitempty"`
	Description         string        `json:"description"`
	TotalAmount         float64       `json:"totalAmount"`
	PaidAmount          float64       `json:"paidAmount"`
	PendingAmount       float64       `json:"pendingAmount"`
	IssueDate           time.Time     `json:"issueDate"`
	DueDate             time.Time     `json:"dueDate"`
	PaymentDate         *time.Time    `json:"paymentDate,omitempty"`
	Status              RecordStatus  `json:"status"`
	InstallmentCount    int           `json:"installmentCount"`
	DocumentNumber      string        `json:"documentNumber,omitempty"`
	Recurring           bool          `json:"recurring"`
	RecurrenceFrequency string        `json:"recurrenceFrequency,omitempty"`
	RecurrenceDueDay    int           `json:"recurrenceDueDay,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	ClientID            *int64        `json:"clientId,omitempty"`
	CategoryID          *int64        `json:"categoryId,omitempty"`
	BankAccountID       *int64        `json:"bankAccountId,omitempty"`
	PaymentMethodID     *int64        `json:"paymentMethodId,omitempty"`
	Client              *Client       `json:"client,omitempty"`
	Category            *Category     `json:"category,omitempty"`
	Installments        []Installment `json:"installments,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// ReceivableInput is the payload for creating or fully replacing a receivable.
type ReceivableInput struct {
	Kind                string    `json:"kind,omitempty"`
	Description         string    `json:"description" validate:"required"`
	TotalAmount         float64   `json:"totalAmount" validate:"required,gt=0"`
	IssueDate           time.Time `json:"issueDate" validate:"required"`
	DueDate             time.Time `json:"dueDate" validate:"required"`
	InstallmentCount    int       `json:"installmentCount,omitempty" validate:"omitempty,min=1"`
	DocumentNumber      string    `json:"documentNumber,omitempty"`
	Recurring           bool      `json:"recurring"`
	RecurrenceFrequency string    `json:"recurrenceFrequency,omitempty" validate:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	RecurrenceDueDay    int       `json:"recurrenceDueDay,omitempty" validate:"omitempty,min=1,max=31"`
	Notes               string    `json:"notes,omitempty"`
	ClientID            *int64    `json:"clientId,omitempty"`
	CategoryID          *int64    `json:"categoryId,omitempty"`
	BankAccountID       *int64    `json:"bankAccountId,omitempty"`
	PaymentMethodID     *int64    `json:"paymentMethodId,omitempty"`
}

// Payable is a tracked amount owed by the business.
type Payable struct {
	ID                  int64         `json:"id"`
	Description         string        `json:"description"`
	TotalAmount         float64       `json:"totalAmount"`
	PaidAmount          float64       `json:"paidAmount"`
	PendingAmount       float64       `json:"pendingAmount"`
	IssueDate           time.Time     `json:"issueDate"`
	DueDate             time.Time     `json:"dueDate"`
	PaymentDate         *time.Time    `json:"paymentDate,omitempty"`
	Status              RecordStatus  `json:"status"`
	InstallmentCount    int           `json:"installmentCount"`
	Recurring           bool          `json:"recurring"`
	RecurrenceFrequency string        `json:"recurrenceFrequency,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	SupplierID          *int64        `json:"supplierId,omitempty"`
	CategoryID          *int64        `json:"categoryId,omitempty"`
	BankAccountID       *int64        `json:"bankAccountId,omitempty"`
	PaymentMethodID     *int64        `json:"paymentMethodId,omitempty"`
	Supplier            *Supplier     `json:"supplier,omitempty"`
	Category            *Category     `json:"category,omitempty"`
	Installments        []Installment `json:"installments,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// PayableInput is the payload for creating a payable.
type PayableInput struct {
	Description         string    `json:"description" validate:"required"`
	TotalAmount         float64   `json:"totalAmount" validate:"required,gt=0"`
	IssueDate           time.Time `json:"issueDate" validate:"required"`
	DueDate             time.Time `json:"dueDate" validate:"required"`
	InstallmentCount    int       `json:"installmentCount,omitempty" validate:"omitempty,min=1"`
	Recurring           bool      `json:"recurring"`
	RecurrenceFrequency string    `json:"recurrenceFrequency,omitempty" validate:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	Notes               string    `json:"notes,omitempty"`
	SupplierID          *int64    `json:"supplierId,omitempty"`
	CategoryID          *int64    `json:"categoryId,omitempty"`
	BankAccountID       *int64    `json:"bankAccountId,omitempty"`
	PaymentMethodID     *int64    `json:"paymentMethodId,omitempty"`
}

// PayablePatch carries a partial update for a payable.
type PayablePatch struct {
	Description     *string    `json:"description,omitempty"`
	TotalAmount     *float64   `json:"totalAmount,omitempty" validate:"omitempty,gt=0"`
	IssueDate       *time.Time `json:"issueDate,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	SupplierID      *int64     `json:"supplierId,omitempty"`
	CategoryID      *int64     `json:"categoryId,omitempty"`
	BankAccountID   *int64     `json:"bankAccountId,omitempty"`
	PaymentMethodID *int64     `json:"paymentMethodId,omitempty"`
}

// PaymentInput registers a partial or full payment against a record.
type PaymentInput struct {
	Amount          float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate     time.Time `json:"paymentDate" validate:"required"`
	PaymentMethodID *int64    `json:"paymentMethodId,omitempty"`
	BankAccountID   *int64    `json:"bankAccountId,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// RecordFilter narrows receivable/payable list calls. The zero value selects
// everything. PartyID matches the client on receivables and the supplier on
// payables.
type RecordFilter struct {
	Status     RecordStatus
	PartyID    int64
	CategoryID int64
	DateFrom   time.Time
	DateTo     time.Time
}

// ReceivableSummary is the server-side aggregate for receivables. The
// aggregate is always computed over the unfiltered set.
type ReceivableSummary struct {
	TotalMonth   float64      `json:"totalMonth"`
	TotalPaid    float64      `json:"totalPaid"`
	TotalPending float64      `json:"totalPending"`
	TotalOverdue float64      `json:"totalOverdue"`
	PendingCount int          `json:"pendingCount"`
	OverdueCount int          `json:"overdueCount"`
	PaidCount    int          `json:"paidCount"`
	Upcoming     []Receivable `json:"upcoming,omitempty"`
}

// PayableSummary is the server-side aggregate for payables.
type PayableSummary struct {
	TotalDue     float64 `json:"totalDue"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalPending float64 `json:"totalPending"`
	TotalOverdue float64 `json:"totalOverdue"`
}

// InvoiceItem is a single invoice line.
type InvoiceItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"required,gt=0"`
	TotalAmount float64 `json:"totalAmount,omitempty"`
}

// Invoice is a billing document issued to a client.
type Invoice struct {
	ID              int64         `json:"id"`
	Number          string        `json:"number"`
	IssueDate       time.Time     `json:"issueDate"`
	DueDate         time.Time     `json:"dueDate"`
	TotalAmount     float64       `json:"totalAmount"`
	Discount        float64       `json:"discount"`
	Surcharge       float64       `json:"surcharge"`
	FinalAmount     float64       `json:"finalAmount"`
	Status          RecordStatus  `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	ClientID        int64         `json:"clientId"`
	Client          *Client       `json:"client,omitempty"`
	CategoryID      *int64        `json:"categoryId,omitempty"`
	BankAccountID   *int64        `json:"bankAccountId,omitempty"`
	PaymentMethodID *int64        `json:"paymentMethodId,omitempty"`
	Items           []InvoiceItem `json:"items,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// InvoiceInput is the payload for creating an invoice. Totals are derived
// server-side from the items.
type InvoiceInput struct {
	ClientID        int64         `json:"clientId" validate:"required"`
	IssueDate       time.Time     `json:"issueDate" validate:"required"`
	DueDate         time.Time     `json:"dueDate" validate:"required"`
	Items           []InvoiceItem `json:"items" validate:"required,min=1,dive"`
	Discount        float64       `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Surcharge       float64       `json:"surcharge,omitempty" validate:"omitempty,gte=0"`
	Notes           string        `json:"notes,omitempty"`
	CategoryID      *int64        `json:"categoryId,omitempty"`
	BankAccountID   *int64        `json:"bankAccountId,omitempty"`
	PaymentMethodID *int64        `json:"paymentMethodId,omitempty"`
}

// InvoicePatch carries a partial update for an invoice.
type InvoicePatch struct {
	DueDate   *time.Time    `json:"dueDate,omitempty"`
	Discount  *float64      `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Surcharge *float64      `json:"surcharge,omitempty" validate:"omitempty,gte=0"`
	Status    *RecordStatus `json:"status,omitempty"`
	Notes     *string       `json:"notes,omitempty"`
	Items     []InvoiceItem `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

// AlertSeverity ranks alert importance.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "CRITICAL"
	SeverityWarning  AlertSeverity = "WARNING"
	SeverityInfo     AlertSeverity = "INFO"
)

// Alert kinds produced by the generator.
const (
	AlertDueSoon      = "DUE_SOON"
	AlertOverdue      = "OVERDUE"
	AlertBalanceFloor = "BALANCE_FLOOR"
)

// Alert is a notification surfaced on the finance dashboard.
type Alert struct {
	ID        int64         `json:"id"`
	Kind      string        `json:"kind"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Severity  AlertSeverity `json:"severity"`
	Read      bool          `json:"read"`
	RecordID  int64         `json:"recordId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// AlertConfig controls what the alert generator produces.
type AlertConfig struct {
	DueSoonEnabled     bool     `json:"dueSoonEnabled"`
	DueSoonDays        int      `json:"dueSoonDays" validate:"omitempty,min=1,max=90"`
	OverdueEnabled     bool     `json:"overdueEnabled"`
	BalanceFloorEnabled bool    `json:"balanceFloorEnabled"`
	BalanceFloorAmount *float64 `json:"balanceFloorAmount,omitempty"`
	EmailEnabled       bool     `json:"emailEnabled"`
	SystemEnabled      bool     `json:"systemEnabled"`
}

// AlertConfigPatch carries a partial update for the alert configuration.
type AlertConfigPatch struct {
	DueSoonEnabled     *bool    `json:"dueSoonEnabled,omitempty"`
	DueSoonDays        *int     `json:"dueSoonDays,omitempty" validate:"omitempty,min=1,max=90"`
	OverdueEnabled     *bool    `json:"overdueEnabled,omitempty"`
	BalanceFloorEnabled *bool   `json:"balanceFloorEnabled,omitempty"`
	BalanceFloorAmount *float64 `json:"balanceFloorAmount,omitempty"`
	EmailEnabled       *bool    `json:"emailEnabled,omitempty"`
	SystemEnabled      *bool    `json:"systemEnabled,omitempty"`
}

// UnreadCount is returned by the alert counter endpoint.
type UnreadCount struct {
	Count int `json:"count"`
}
