package domain

// EntityKind names one financial record kind.
type EntityKind string

const (
	KindTransaction EntityKind = "transaction"
	KindBudget      EntityKind = "budget"
	KindDebt        EntityKind = "debt"
	KindGoal        EntityKind = "goal"
	KindBill        EntityKind = "bill"
	KindBankAccount EntityKind = "bankAccount"
)

// EntityKinds lists every kind in display order.
var EntityKinds = []EntityKind{KindTransaction, KindBudget, KindDebt, KindGoal, KindBill, KindBankAccount}

// TransactionType is the direction of money flow.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// BankAccountType is the kind of deposit account.
type BankAccountType string

const (
	Checking BankAccountType = "checking"
	Savings  BankAccountType = "savings"
)

// Transaction is a candidate income or expense entry. Date is kept as entered.
type Transaction struct {
	ID       string          `json:"id,omitempty"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Amount   NumericInput    `json:"amount"`
	Note     string          `json:"note"`
	Date     string          `json:"date"`
}

// Budget is a monthly spending cap for a category.
type Budget struct {
	ID       string       `json:"id,omitempty"`
	Category string       `json:"category"`
	Monthly  NumericInput `json:"monthly"`
}

// Debt is an outstanding loan or card balance.
type Debt struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Balance NumericInput `json:"balance"`
	APR     NumericInput `json:"apr"`
	MinPay  NumericInput `json:"minPay"`
}

// Goal is a savings target.
type Goal struct {
	ID     string       `json:"id,omitempty"`
	Name   string       `json:"name"`
	Target NumericInput `json:"target"`
	Saved  NumericInput `json:"saved"`
}

// Bill is a recurring payment with a due date.
type Bill struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Amount  NumericInput `json:"amount"`
	DueDate string       `json:"dueDate"`
}

// BankAccount is a deposit account tracked by the user.
type BankAccount struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	BankName string          `json:"bankName"`
	Type     BankAccountType `json:"type"`
	Balance  NumericInput    `json:"balance"`
}
