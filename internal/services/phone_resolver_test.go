package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/mocks"
)

func linkedPair() (*domain.Customer, *domain.User) {
	userID := uint(7)
	customer := &domain.Customer{ID: 3, UserID: &userID, Mobile: "9876543210"}
	user := &domain.User{ID: 7, Email: "agent@example.com", Mobile: "9876543210", Role: domain.RoleCustomer, IsActive: true}
	return customer, user
}

func TestPhoneResolver_ExactTier(t *testing.T) {
	customer, user := linkedPair()
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		if len(mobiles) == 1 && mobiles[0] == "+91 98765-43210" {
			return customer, nil
		}
		return nil, domain.ErrCustomerNotFound
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return user, nil
	}

	r := NewPhoneResolver(userRepo, customerRepo, "91", false)

	gotCustomer, gotUser, err := r.ResolveCustomer(context.Background(), "+91 98765-43210")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, gotCustomer.ID)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.Len(t, customerRepo.MobileLookups, 1, "first tier hit, no fallthrough")
}

func TestPhoneResolver_CanonicalTier(t *testing.T) {
	customer, user := linkedPair()
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		if len(mobiles) == 1 && mobiles[0] == "9876543210" {
			return customer, nil
		}
		return nil, domain.ErrCustomerNotFound
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return user, nil
	}

	r := NewPhoneResolver(userRepo, customerRepo, "91", false)

	_, _, err := r.ResolveCustomer(context.Background(), "+91 98765-43210")
	require.NoError(t, err)
	assert.Len(t, customerRepo.MobileLookups, 2, "exact tier missed, canonical hit")
}

func TestPhoneResolver_PrefixedTier(t *testing.T) {
	customer, user := linkedPair()
	customer.Mobile = "+919876543210"
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		for _, m := range mobiles {
			if m == "+919876543210" {
				return customer, nil
			}
		}
		return nil, domain.ErrCustomerNotFound
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return user, nil
	}

	r := NewPhoneResolver(userRepo, customerRepo, "91", false)

	_, _, err := r.ResolveCustomer(context.Background(), "9876543210")
	require.NoError(t, err)
	require.Len(t, customerRepo.MobileLookups, 3)
	assert.Equal(t, []string{"919876543210", "+919876543210", "09876543210"}, customerRepo.MobileLookups[2])
}

func TestPhoneResolver_SuffixTierDisabledByDefault(t *testing.T) {
	customerRepo := mocks.NewMockCustomerRepository()

	r := NewPhoneResolver(mocks.NewMockUserRepository(), customerRepo, "91", false)

	_, _, err := r.ResolveCustomer(context.Background(), "9876543210")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.Empty(t, customerRepo.SuffixLookups, "suffix tier must not run unless enabled")
}

func TestPhoneResolver_SuffixTierOptIn(t *testing.T) {
	customer, user := linkedPair()
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileSuffixFunc = func(ctx context.Context, suffix string) (*domain.Customer, error) {
		if suffix == "76543210" {
			return customer, nil
		}
		return nil, domain.ErrCustomerNotFound
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return user, nil
	}

	r := NewPhoneResolver(userRepo, customerRepo, "91", true)

	gotCustomer, _, err := r.ResolveCustomer(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, gotCustomer.ID)
	assert.Equal(t, []string{"76543210"}, customerRepo.SuffixLookups)
}

func TestPhoneResolver_EmptyPhone(t *testing.T) {
	r := NewPhoneResolver(mocks.NewMockUserRepository(), mocks.NewMockCustomerRepository(), "91", false)

	_, _, err := r.ResolveCustomer(context.Background(), "---")
	assert.ErrorIs(t, err, domain.ErrMissingPhone)
}

func TestPhoneResolver_OwningKeyPreferred(t *testing.T) {
	customer, user := linkedPair()
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		return customer, nil
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		assert.Equal(t, uint(7), id)
		return user, nil
	}
	var mobileLookups int
	userRepo.FindByMobileAndRoleFunc = func(ctx context.Context, mobile, role string) (*domain.User, error) {
		mobileLookups++
		return nil, domain.ErrUserNotFound
	}

	r := NewPhoneResolver(userRepo, customerRepo, "91", false)

	_, gotUser, err := r.ResolveCustomer(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.Equal(t, 0, mobileLookups, "FK resolved, no mobile fallback")
}

func TestPhoneResolver_BrokenKeyFallsBackToMobile(t *testing.T) {
	customer, user := linkedPair()
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		return customer, nil
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	userRepo.FindByMobileAndRoleFunc = func(ctx context.Context, mobile, role string) (*domain.User, error) {
		assert.Equal(t, domain.RoleCustomer, role)
		if mobile == "9876543210" {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}

	r := NewPhoneResolver(userRepo, customerRepo, "91", false)

	_, gotUser, err := r.ResolveCustomer(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser.ID)
}

func TestPhoneResolver_UnlinkedCustomerNoIdentity(t *testing.T) {
	customer := &domain.Customer{ID: 3, Mobile: "9876543210"} // no owning key
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		return customer, nil
	}

	r := NewPhoneResolver(mocks.NewMockUserRepository(), customerRepo, "91", false)

	_, _, err := r.ResolveCustomer(context.Background(), "9876543210")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPhoneResolver_StoreFailure(t *testing.T) {
	customerRepo := mocks.NewMockCustomerRepository()
	customerRepo.FindByMobileFunc = func(ctx context.Context, mobiles []string) (*domain.Customer, error) {
		return nil, errors.New("connection reset")
	}

	r := NewPhoneResolver(mocks.NewMockUserRepository(), customerRepo, "91", false)

	_, _, err := r.ResolveCustomer(context.Background(), "9876543210")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
