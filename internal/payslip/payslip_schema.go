package payslip

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type CheckConstraint struct {
	Name       string
	Expression string
}

// SQL renders the constraint as it appears inside CREATE TABLE.
func (c CheckConstraint) SQL() string {
	return fmt.Sprintf("CONSTRAINT %s CHECK (%s)", c.Name, c.Expression)
}

// CheckConstraints derives the storage check constraints from the rule table.
func CheckConstraints() []CheckConstraint {
	out := make([]CheckConstraint, 0, len(fieldRules))
	for _, rule := range fieldRules {
		out = append(out, CheckConstraint{Name: rule.ConstraintName(), Expression: rule.Check})
	}
	return out
}

// EnsureSchema creates or updates the payslips table for development use.
// On postgres it also adds any missing check constraint; other dialects only
// get the unique index.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(&Payslip{}); err != nil {
		return fmt.Errorf("auto migrate payslips: %w", err)
	}

	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	migrator := tx.Migrator()
	for _, c := range CheckConstraints() {
		if migrator.HasConstraint(&Payslip{}, c.Name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD %s", Payslip{}.TableName(), c.SQL())
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.Name, err)
		}
	}
	return nil
}
