package payslip

import (
	"context"

	"gorm.io/gorm"
)

// Repository owns the payslips table. Every method is a single statement.
type Repository interface {
	ExistsByIdentity(ctx context.Context, employeeID, monthYear string) (bool, error)
	Create(ctx context.Context, payslip *Payslip) error
	FindByIdentity(ctx context.Context, employeeID, monthYear string) (*Payslip, error)
	FindByID(ctx context.Context, id uint) (*Payslip, error)
	FindAllSummaries(ctx context.Context) ([]PayslipSummary, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
	Ping(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExistsByIdentity(ctx context.Context, employeeID, monthYear string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("employee_id = ? AND month_year = ?", employeeID, monthYear).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, payslip *Payslip) error {
	return r.db.WithContext(ctx).Create(payslip).Error
}

func (r *repository) FindByIdentity(ctx context.Context, employeeID, monthYear string) (*Payslip, error) {
	var payslip Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND month_year = ?", employeeID, monthYear).
		Order("id").
		First(&payslip).Error
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Payslip, error) {
	var payslip Payslip
	err := r.db.WithContext(ctx).First(&payslip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *repository) FindAllSummaries(ctx context.Context) ([]PayslipSummary, error) {
	summaries := make([]PayslipSummary, 0)
	err := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Select("id", "employee_id", "employee_name", "month_year", "net_pay", "created_at").
		Order("created_at DESC").
		Order("id DESC").
		Find(&summaries).Error
	return summaries, err
}

func (r *repository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&Payslip{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
