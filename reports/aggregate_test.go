package reports

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"studio-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

func employee(name string, commission models.NumericText) models.Employee {
	return models.Employee{ID: uuid.New(), Name: name, Role: "Estilista", Commission: commission}
}

func tx(emp uuid.UUID, service string, price float64, at time.Time) models.Transaction {
	return models.Transaction{ID: uuid.New(), EmployeeID: emp, ServiceName: service, Price: price, Date: at, PaymentMethod: models.PaymentCash}
}

func TestAggregate_ScenarioA(t *testing.T) {
	diana := employee("Diana", "40")
	txs := []models.Transaction{
		tx(diana.ID, "Cortes", 50, today.Add(-3*time.Hour)),
		tx(diana.ID, "Tintes", 30, today.Add(-2*time.Hour)),
		tx(diana.ID, "Manicure", 20, today.Add(-1*time.Hour)),
	}

	report := Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Day, 0, today))

	s, ok := report.Find(diana.ID)
	require.True(t, ok)
	assert.InDelta(t, 100.0, s.Generated, 1e-9)
	assert.InDelta(t, 40.0, s.Payout, 1e-9)
	assert.InDelta(t, 60.0, s.LocalProfit, 1e-9)
	assert.Equal(t, "40.00", Money("", s.Payout))
	assert.Equal(t, "60.00", Money("", s.LocalProfit))
	assert.Len(t, s.Transactions, 3)
}

func TestAggregate_ScenarioC_OrphanTransaction(t *testing.T) {
	diana := employee("Diana", "40")
	ghost := uuid.New()
	txs := []models.Transaction{
		tx(diana.ID, "Cortes", 50, today),
		tx(ghost, "Tintes", 80, today),
	}

	var report Report
	require.NotPanics(t, func() {
		report = Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Month, 0, today))
	})

	require.Len(t, report.Employees, 1)
	assert.InDelta(t, 50.0, report.Employees[0].Generated, 1e-9)
	assert.InDelta(t, 50.0, report.Totals.Generated, 1e-9)
	assert.InDelta(t, 130.0, report.Ledger.Income, 1e-9, "ledger totals do not key by employee")
	assert.Equal(t, 1, report.Unassigned)
	_, found := report.Find(ghost)
	assert.False(t, found)
}

func TestAggregate_EmployeeWithoutTransactions(t *testing.T) {
	diana := employee("Diana", "40")
	yolita := employee("Yolita", "40")
	txs := []models.Transaction{tx(diana.ID, "Cortes", 50, today)}

	report := Aggregate([]models.Employee{diana, yolita}, txs, nil, PeriodRange(Week, 0, today))

	s, ok := report.Find(yolita.ID)
	require.True(t, ok)
	assert.Zero(t, s.Generated)
	assert.Zero(t, s.Payout)
	assert.Zero(t, s.LocalProfit)
	assert.NotNil(t, s.Transactions)
	assert.Empty(t, s.Transactions)
}

func TestAggregate_LedgerAndRangeFiltering(t *testing.T) {
	diana := employee("Diana", "50")
	r := PeriodRange(Month, 0, today)
	txs := []models.Transaction{
		tx(diana.ID, "Cortes", 100, r.Start),
		tx(diana.ID, "Cortes", 100, r.End),
		tx(diana.ID, "Cortes", 999, r.Start.Add(-time.Millisecond)),
		tx(diana.ID, "Cortes", 999, r.End.Add(time.Millisecond)),
	}
	expenses := []models.Expense{
		{Category: "Luz", Amount: 30, Date: today},
		{Category: "Agua", Amount: 20, Date: today},
		{Category: "Local", Amount: 500, Date: r.Start.AddDate(0, -1, 0)},
	}

	report := Aggregate([]models.Employee{diana}, txs, expenses, r)

	assert.InDelta(t, 200.0, report.Ledger.Income, 1e-9)
	assert.InDelta(t, 50.0, report.Ledger.Expenses, 1e-9)
	assert.InDelta(t, 150.0, report.Ledger.Profit, 1e-9)
	assert.Equal(t, 2, report.Ledger.TransactionCount)
	assert.Equal(t, 2, report.Ledger.ExpenseCount)
	assert.InDelta(t, 100.0, report.Totals.Payout, 1e-9)
}

func TestAggregate_NonNumericCommissionCountsAsZero(t *testing.T) {
	for _, c := range []models.NumericText{"", "abc"} {
		emp := employee("Ana", c)
		report := Aggregate([]models.Employee{emp}, []models.Transaction{tx(emp.ID, "Cortes", 70, today)}, nil, PeriodRange(Day, 0, today))
		s := report.Employees[0]
		assert.Zero(t, s.CommissionPercent)
		assert.Zero(t, s.Payout)
		assert.InDelta(t, 70.0, s.LocalProfit, 1e-9)
	}
}

func TestAggregate_TransactionsSortedAscending(t *testing.T) {
	diana := employee("Diana", "40")
	txs := []models.Transaction{
		tx(diana.ID, "late", 10, today.Add(2*time.Hour)),
		tx(diana.ID, "early", 10, today.Add(-2*time.Hour)),
	}
	report := Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Day, 0, today))
	require.Len(t, report.Employees[0].Transactions, 2)
	assert.Equal(t, "early", report.Employees[0].Transactions[0].ServiceName)
}

func TestAggregate_PayoutPlusProfitEqualsGenerated(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		c := float64(rng.Intn(101))
		emp := employee("E", models.FormatNumber(c))
		var txs []models.Transaction
		n := rng.Intn(30)
		for j := 0; j < n; j++ {
			price := math.Round(rng.Float64()*20000) / 100
			if price == 0 {
				price = 0.01
			}
			txs = append(txs, tx(emp.ID, "S", price, today))
		}
		s := Aggregate([]models.Employee{emp}, txs, nil, PeriodRange(Day, 0, today)).Employees[0]

		assert.InDelta(t, s.Generated*c/100, s.Payout, 1e-9*math.Max(1, s.Generated))
		assert.InDelta(t, s.Generated, s.LocalProfit+s.Payout, 1e-9*math.Max(1, s.Generated))
	}
}

func TestBuildTable(t *testing.T) {
	diana := employee("Diana", "40")
	yolita := employee("Yolita", "30")
	txs := []models.Transaction{
		tx(diana.ID, "Cortes", 100, today),
		tx(yolita.ID, "Maquillaje", 200, today),
	}
	report := Aggregate([]models.Employee{diana, yolita}, txs, nil, PeriodRange(Month, 0, today))

	table := BuildTable(Month, report)
	require.Len(t, table.Rows, 2)
	require.NotNil(t, table.Totals)
	assert.InDelta(t, 300.0, table.Totals.Generated, 1e-9)
	assert.InDelta(t, 100.0, table.Totals.Payout, 1e-9)
	assert.InDelta(t, 200.0, table.Totals.LocalProfit, 1e-9)
	assert.Equal(t, "octubre de 2026", table.Label)

	weekly := BuildTable(Week, report)
	assert.Nil(t, weekly.Totals)
	assert.Equal(t, 1, weekly.Rows[0].Services)
}

func TestAggregate_ChargeInLastMillisecondOfDay(t *testing.T) {
	diana := employee("Diana", "40")
	late := time.Date(2026, 10, 18, 23, 59, 59, 999_500_000, time.UTC)
	txs := []models.Transaction{tx(diana.ID, "Cortes", 50, late)}

	day := Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Day, 0, today))
	next := Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Day, 1, today))
	month := Aggregate([]models.Employee{diana}, txs, nil, PeriodRange(Month, 0, today))

	assert.InDelta(t, 50.0, day.Ledger.Income, 1e-9)
	assert.Zero(t, next.Ledger.Income)
	assert.InDelta(t, 50.0, month.Ledger.Income, 1e-9)
}
