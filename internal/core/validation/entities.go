package validation

import (
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
)

// Upper bounds of the monetary fields.
const (
	MaxTransactionAmount = 1_000_000_000
	MaxBudgetMonthly     = 100_000_000
	MaxDebtBalance       = 10_000_000_000
	MaxDebtAPR           = 50
	MaxGoalTarget        = 10_000_000_000
	MaxBillAmount        = 100_000_000
	MaxBankBalance       = 10_000_000_000
	MaxNoteLen           = 200
)

// ValidateTransaction checks an income or expense entry. The date must fall within the
// last year up to and including today, in the engine clock's location.
func (v *Validator) ValidateTransaction(tx domain.Transaction) domain.ValidationResult {
	c := v.collect()
	c.checkOneOf("type", string(tx.Type), string(domain.Income), string(domain.Expense))
	c.checkText("category", tx.Category, 0)
	c.checkNumber("amount", tx.Amount, numberRule{min: above(0), max: atMost(MaxTransactionAmount)})
	c.checkText("note", tx.Note, MaxNoteLen)

	now := v.now()
	loc := now.Location()
	if date, ok := c.checkDate("date", tx.Date, loc); ok {
		day := civilDay(date, loc)
		today := civilDay(now, loc)
		switch {
		case day.After(today):
			c.add("date", i18n.MsgDateInFuture)
		case day.Before(today.AddDate(-1, 0, 0)):
			c.add("date", i18n.MsgDateTooOld)
		}
	}
	return c.result()
}

// ValidateBudget checks a monthly category budget.
func (v *Validator) ValidateBudget(b domain.Budget) domain.ValidationResult {
	c := v.collect()
	c.checkText("category", b.Category, 0)
	c.checkNumber("monthly", b.Monthly, numberRule{min: above(0), max: atMost(MaxBudgetMonthly)})
	return c.result()
}

// ValidateDebt checks a debt. The minimum payment is compared with the balance whenever
// both are numbers, even if the balance is itself out of range.
func (v *Validator) ValidateDebt(d domain.Debt) domain.ValidationResult {
	c := v.collect()
	c.checkText("name", d.Name, MaxNameLen)
	balance, balanceOK := c.checkNumber("balance", d.Balance, numberRule{min: above(0), max: atMost(MaxDebtBalance)})
	c.checkNumber("apr", d.APR, numberRule{min: atLeast(0), max: atMost(MaxDebtAPR)})
	minPay, minPayOK := c.checkNumber("minPay", d.MinPay, numberRule{min: above(0)})
	if balanceOK && minPayOK && minPay.GreaterThan(balance) {
		c.addPlain("minPay", i18n.MsgMinPayOverBal)
	}
	return c.result()
}

// ValidateGoal checks a savings goal; saved may not exceed target.
func (v *Validator) ValidateGoal(g domain.Goal) domain.ValidationResult {
	c := v.collect()
	c.checkText("name", g.Name, MaxNameLen)
	target, targetOK := c.checkNumber("target", g.Target, numberRule{min: above(0), max: atMost(MaxGoalTarget)})
	saved, savedOK := c.checkNumber("saved", g.Saved, numberRule{min: atLeast(0)})
	if targetOK && savedOK && saved.GreaterThan(target) {
		c.addPlain("saved", i18n.MsgSavedOverTarget)
	}
	return c.result()
}

// ValidateBill checks a bill. Due dates only need to parse.
func (v *Validator) ValidateBill(b domain.Bill) domain.ValidationResult {
	c := v.collect()
	c.checkText("name", b.Name, MaxNameLen)
	c.checkNumber("amount", b.Amount, numberRule{min: above(0), max: atMost(MaxBillAmount)})
	c.checkDate("dueDate", b.DueDate, v.now().Location())
	return c.result()
}

// ValidateBankAccount checks a bank account.
func (v *Validator) ValidateBankAccount(a domain.BankAccount) domain.ValidationResult {
	c := v.collect()
	c.checkText("name", a.Name, MaxNameLen)
	c.checkText("bankName", a.BankName, MaxNameLen)
	c.checkOneOf("type", string(a.Type), string(domain.Checking), string(domain.Savings))
	c.checkNumber("balance", a.Balance, numberRule{min: atLeast(0), max: atMost(MaxBankBalance)})
	return c.result()
}
