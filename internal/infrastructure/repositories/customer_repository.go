package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// CustomerRepositoryImpl implements domain.CustomerRepository using GORM
type CustomerRepositoryImpl struct {
	db *gorm.DB
}

// DBCustomer represents the database model for Customer
type DBCustomer struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"index"`
	Name      string `gorm:"size:255"`
	Mobile    string `gorm:"index;size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBCustomer) TableName() string {
	return "customers"
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return &CustomerRepositoryImpl{db: db}
}

// Mobile lookups run Unscoped: the customer soft-delete flag belongs to
// the business layer, and a profile deleted there may still hold a live
// session that has to resolve.

// FindByMobile implements domain.CustomerRepository, matching any of the
// supplied stored shapes.
func (r *CustomerRepositoryImpl) FindByMobile(ctx context.Context, mobiles []string) (*domain.Customer, error) {
	if len(mobiles) == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	var dbCustomer DBCustomer
	err := r.db.WithContext(ctx).Unscoped().
		Where("mobile IN ?", mobiles).
		Order("created_at DESC").
		First(&dbCustomer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCustomer), nil
}

// FindByMobileSuffix implements domain.CustomerRepository. Best-effort
// trailing-digit match; callers gate it behind a flag.
func (r *CustomerRepositoryImpl) FindByMobileSuffix(ctx context.Context, suffix string) (*domain.Customer, error) {
	if suffix == "" {
		return nil, domain.ErrCustomerNotFound
	}
	var dbCustomer DBCustomer
	err := r.db.WithContext(ctx).Unscoped().
		Where("mobile LIKE ?", "%"+suffix).
		Order("created_at DESC").
		First(&dbCustomer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCustomer), nil
}

// FindByUserID implements domain.CustomerRepository
func (r *CustomerRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.Customer, error) {
	var dbCustomer DBCustomer
	err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		First(&dbCustomer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCustomer), nil
}

// dbToDomain converts database customer to domain customer
func (r *CustomerRepositoryImpl) dbToDomain(dbCustomer *DBCustomer) *domain.Customer {
	return &domain.Customer{
		ID:        dbCustomer.ID,
		UserID:    dbCustomer.UserID,
		Name:      dbCustomer.Name,
		Mobile:    dbCustomer.Mobile,
		CreatedAt: dbCustomer.CreatedAt,
		UpdatedAt: dbCustomer.UpdatedAt,
	}
}
