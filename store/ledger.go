package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"studio-backend/models"

	"gorm.io/gorm"
)

// ResetLedger deletes every transaction and expense one at a time. A failed
// delete does not stop the loop, so the reset can end half done; the count
// of removed documents is returned with all failures joined.
func (s *Store) ResetLedger(ctx context.Context) (int, error) {
	txs, err := s.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset: %w", err)
	}
	exps, err := s.ListExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset: %w", err)
	}

	var (
		deleted int
		errs    []error
	)
	for _, t := range txs {
		if err := s.deleteOne(ctx, Transactions, t.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	for _, e := range exps {
		if err := s.deleteOne(ctx, Expenses, e.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	s.publish(ctx, Transactions)
	s.publish(ctx, Expenses)

	log.Printf("[STORE] ledger reset: %d of %d documents deleted", deleted, len(txs)+len(exps))
	return deleted, errors.Join(errs...)
}

var (
	seedEmployees = []struct{ name, role string }{
		{"Diana", "Estilista Senior"},
		{"Yolita", "Maquilladora"},
	}
	seedServices = []string{"Cortes", "Maquillaje", "Manicure", "Pedicure", "Laceados", "Tintes"}
)

// Seed loads the example staff and catalog.
func (s *Store) Seed(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, seed := range seedEmployees {
			emp := models.Employee{
				Name:       seed.name,
				Role:       seed.role,
				Commission: models.FormatNumber(models.DefaultCommission),
			}
			if err := tx.Create(&emp).Error; err != nil {
				return err
			}
		}
		for _, name := range seedServices {
			if err := tx.Create(&models.Service{Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[STORE] seed failed: %v", err)
		return fmt.Errorf("seed: %w", err)
	}
	s.publish(ctx, Employees)
	s.publish(ctx, Services)
	return nil
}
