package reports

import (
	"math"
	"sort"

	"studio-backend/models"

	"github.com/google/uuid"
)

// Epsilon is the tolerance, in currency units, used when comparing sums of
// prices that went through repeated float addition.
const Epsilon = 0.1

func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

type LedgerSummary struct {
	Income           float64 `json:"monthlyIncome"`
	Expenses         float64 `json:"monthlyExpenses"`
	Profit           float64 `json:"profit"`
	TransactionCount int     `json:"transactionCount"`
	ExpenseCount     int     `json:"expenseCount"`
}

type EmployeeSummary struct {
	Employee          models.Employee      `json:"employee"`
	Transactions      []models.Transaction `json:"transactions"`
	Generated         float64              `json:"generated"`
	CommissionPercent float64              `json:"commissionPercent"`
	Payout            float64              `json:"payout"`
	LocalProfit       float64              `json:"localProfit"`
}

type Totals struct {
	Generated   float64 `json:"generated"`
	Payout      float64 `json:"payout"`
	LocalProfit float64 `json:"localProfit"`
}

type Report struct {
	Range     Range             `json:"range"`
	Ledger    LedgerSummary     `json:"ledger"`
	Employees []EmployeeSummary `json:"employees"`
	Totals    Totals            `json:"totals"`
	// Unassigned counts in-range transactions whose employee no longer exists.
	Unassigned int `json:"unassigned"`
}

// Summarize folds one employee's transactions, already filtered to the
// period, into generated/payout/local profit.
func Summarize(emp models.Employee, txs []models.Transaction) EmployeeSummary {
	s := EmployeeSummary{
		Employee:          emp,
		Transactions:      txs,
		CommissionPercent: emp.CommissionPercent(),
	}
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	for _, t := range txs {
		s.Generated += t.Price
	}
	s.Payout = s.Generated * s.CommissionPercent / 100
	s.LocalProfit = s.Generated - s.Payout
	return s
}

// Aggregate computes ledger and per-employee totals for r. Employees keep the
// roster order; transactions inside each summary are sorted by date ascending.
func Aggregate(employees []models.Employee, transactions []models.Transaction, expenses []models.Expense, r Range) Report {
	report := Report{Range: r, Employees: make([]EmployeeSummary, 0, len(employees))}

	byEmployee := make(map[uuid.UUID][]models.Transaction, len(employees))
	known := make(map[uuid.UUID]bool, len(employees))
	for _, e := range employees {
		known[e.ID] = true
	}

	for _, t := range transactions {
		if !r.Contains(t.Date) {
			continue
		}
		report.Ledger.Income += t.Price
		report.Ledger.TransactionCount++
		if !known[t.EmployeeID] {
			report.Unassigned++
			continue
		}
		byEmployee[t.EmployeeID] = append(byEmployee[t.EmployeeID], t)
	}

	for _, e := range expenses {
		if !r.Contains(e.Date) {
			continue
		}
		report.Ledger.Expenses += e.Amount
		report.Ledger.ExpenseCount++
	}
	report.Ledger.Profit = report.Ledger.Income - report.Ledger.Expenses

	for _, emp := range employees {
		txs := byEmployee[emp.ID]
		SortByDate(txs)
		s := Summarize(emp, txs)
		report.Employees = append(report.Employees, s)
		report.Totals.Generated += s.Generated
		report.Totals.Payout += s.Payout
		report.Totals.LocalProfit += s.LocalProfit
	}

	return report
}

// Find returns the summary for id, if that employee is in the report.
func (r Report) Find(id uuid.UUID) (EmployeeSummary, bool) {
	for _, s := range r.Employees {
		if s.Employee.ID == id {
			return s, true
		}
	}
	return EmployeeSummary{}, false
}

func SortByDate(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
}
