package payments

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"studio-backend/models"
	"studio-backend/reports"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeSplit  Mode = "split"
)

var (
	ErrInvalidTotal  = errors.New("charge total must be greater than zero")
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrMissingMethod = errors.New("payment method is required")
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrNotSplitMode  = errors.New("partial payments require split mode")
)

// MismatchError rejects a split commit. Shortfall is total minus the sum of
// the partials: positive when money is missing, negative when overpaid.
type MismatchError struct {
	Total     float64
	Paid      float64
	Shortfall float64
}

func (e *MismatchError) Error() string {
	if e.Shortfall > 0 {
		return fmt.Sprintf("split payments are short by %s", reports.Money("", e.Shortfall))
	}
	return fmt.Sprintf("split payments exceed the total by %s", reports.Money("", -e.Shortfall))
}

type Partial struct {
	Method models.PaymentMethod `json:"method"`
	Amount float64              `json:"amount"`
}

// Checkout collects payment for one service charge, either with a single
// method or split across several partial payments.
type Checkout struct {
	EmployeeID  uuid.UUID
	ServiceName string
	Total       float64

	mode     Mode
	method   models.PaymentMethod
	partials []Partial
}

func NewCheckout(employeeID uuid.UUID, serviceName string, total float64) (*Checkout, error) {
	if math.IsNaN(total) || total <= 0 {
		return nil, ErrInvalidTotal
	}
	return &Checkout{
		EmployeeID:  employeeID,
		ServiceName: serviceName,
		Total:       total,
		mode:        ModeSingle,
		method:      models.PaymentCash,
	}, nil
}

func (c *Checkout) Mode() Mode { return c.mode }

func (c *Checkout) Partials() []Partial {
	return append([]Partial(nil), c.partials...)
}

func (c *Checkout) SetMethod(m models.PaymentMethod) error {
	method, err := checkMethod(m)
	if err != nil {
		return err
	}
	c.method = method
	return nil
}

// SetSplit switches modes. Leaving split mode discards the partials.
func (c *Checkout) SetSplit(on bool) {
	if on {
		c.mode = ModeSplit
		return
	}
	c.mode = ModeSingle
	c.partials = nil
}

// AddPartial appends a partial payment. The sum is only checked on Commit.
func (c *Checkout) AddPartial(method models.PaymentMethod, amount models.NumericText) error {
	if c.mode != ModeSplit {
		return ErrNotSplitMode
	}
	method, err := checkMethod(method)
	if err != nil {
		return err
	}
	v, ok := amount.Float()
	if !ok || v <= 0 {
		return ErrInvalidAmount
	}
	c.partials = append(c.partials, Partial{Method: method, Amount: v})
	return nil
}

func (c *Checkout) Paid() float64 {
	var sum float64
	for _, p := range c.partials {
		sum += p.Amount
	}
	return sum
}

// Remaining is total minus what the partials already cover.
func (c *Checkout) Remaining() float64 {
	return c.Total - c.Paid()
}

// Commit produces the ledger entries for this charge. A split commit is
// rejected unless the partials add up to the total within reports.Epsilon.
func (c *Checkout) Commit(now time.Time) ([]models.Transaction, error) {
	if c.mode == ModeSingle {
		return []models.Transaction{{
			EmployeeID:    c.EmployeeID,
			ServiceName:   c.ServiceName,
			Price:         c.Total,
			Date:          now,
			PaymentMethod: c.method,
		}}, nil
	}

	paid := c.Paid()
	if len(c.partials) == 0 || !reports.ApproxEqual(c.Total, paid) {
		return nil, &MismatchError{Total: c.Total, Paid: paid, Shortfall: c.Total - paid}
	}

	txs := make([]models.Transaction, 0, len(c.partials))
	for _, p := range c.partials {
		txs = append(txs, models.Transaction{
			EmployeeID:    c.EmployeeID,
			ServiceName:   PartialServiceName(c.ServiceName, p.Method),
			Price:         p.Amount,
			Date:          now,
			PaymentMethod: p.Method,
		})
	}
	return txs, nil
}

func PartialServiceName(service string, method models.PaymentMethod) string {
	return fmt.Sprintf("%s (Part. %s)", service, method)
}

func checkMethod(m models.PaymentMethod) (models.PaymentMethod, error) {
	m = normalizeMethod(m)
	if m == "" {
		return "", ErrMissingMethod
	}
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
	return m, nil
}

func normalizeMethod(m models.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod(strings.ToUpper(strings.TrimSpace(string(m))))
}
