package reports

import "github.com/google/uuid"

type TableRow struct {
	EmployeeID        uuid.UUID `json:"employeeId"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	Services          int       `json:"services"`
	Generated         float64   `json:"generated"`
	CommissionPercent float64   `json:"commissionPercent"`
	Payout            float64   `json:"payout"`
	LocalProfit       float64   `json:"localProfit"`
}

type Table struct {
	Unit   Unit          `json:"unit"`
	Label  string        `json:"label"`
	Range  Range         `json:"range"`
	Rows   []TableRow    `json:"rows"`
	Totals *Totals       `json:"totals,omitempty"`
	Ledger LedgerSummary `json:"ledger"`
}

// BuildTable is the on-screen rendering. Only the month view carries a totals row.
func BuildTable(unit Unit, report Report) Table {
	t := Table{
		Unit:   unit,
		Label:  RangeLabel(unit, report.Range),
		Range:  report.Range,
		Rows:   make([]TableRow, 0, len(report.Employees)),
		Ledger: report.Ledger,
	}
	for _, s := range report.Employees {
		t.Rows = append(t.Rows, TableRow{
			EmployeeID:        s.Employee.ID,
			Name:              s.Employee.Name,
			Role:              s.Employee.Role,
			Services:          len(s.Transactions),
			Generated:         s.Generated,
			CommissionPercent: s.CommissionPercent,
			Payout:            s.Payout,
			LocalProfit:       s.LocalProfit,
		})
	}
	if unit == Month {
		totals := report.Totals
		t.Totals = &totals
	}
	return t
}
