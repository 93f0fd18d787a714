package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// suffixLen is the digit count used by the last-resort suffix tier.
// Two stored numbers sharing a suffix this short can collide, which is
// why the tier is opt-in.
const suffixLen = 8

// PhoneResolverImpl implements domain.PhoneResolver. Lookup tiers run
// from most to least reliable: exact input, canonical form, prefixed
// variants, then (only when enabled) a trailing-digit match. The tier
// that resolved is logged for observability.
type PhoneResolverImpl struct {
	userRepo     domain.UserRepository
	customerRepo domain.CustomerRepository
	countryCode  string
	allowSuffix  bool
}

// NewPhoneResolver creates a new identity resolver
func NewPhoneResolver(userRepo domain.UserRepository, customerRepo domain.CustomerRepository, countryCode string, allowSuffix bool) domain.PhoneResolver {
	return &PhoneResolverImpl{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		countryCode:  countryCode,
		allowSuffix:  allowSuffix,
	}
}

// ResolveCustomer implements domain.PhoneResolver. The identity is the
// source of truth: the customer's owning foreign key is followed first,
// and a mobile lookup on the users table is the fallback when the key
// does not resolve.
func (r *PhoneResolverImpl) ResolveCustomer(ctx context.Context, rawPhone string) (*domain.Customer, *domain.User, error) {
	canonical := CanonicalMobile(rawPhone, r.countryCode)
	if canonical == "" {
		return nil, nil, domain.ErrMissingPhone
	}

	customer, tier, err := r.lookupCustomer(ctx, rawPhone, canonical)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("resolver: customer %d matched via %s tier for %s", customer.ID, tier, MaskMobile(canonical))

	user, err := r.lookupUser(ctx, customer, canonical)
	if err != nil {
		return nil, nil, err
	}
	return customer, user, nil
}

func (r *PhoneResolverImpl) lookupCustomer(ctx context.Context, rawPhone, canonical string) (*domain.Customer, string, error) {
	tiers := []struct {
		name    string
		mobiles []string
	}{
		{"exact", []string{rawPhone}},
		{"canonical", []string{canonical}},
		{"prefixed", []string{
			r.countryCode + canonical,
			"+" + r.countryCode + canonical,
			"0" + canonical,
		}},
	}

	for _, tier := range tiers {
		customer, err := r.customerRepo.FindByMobile(ctx, tier.mobiles)
		if err == nil {
			return customer, tier.name, nil
		}
		if !errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if r.allowSuffix {
		suffix := MobileSuffix(canonical, r.countryCode, suffixLen)
		customer, err := r.customerRepo.FindByMobileSuffix(ctx, suffix)
		if err == nil {
			// ambiguous by construction; worth watching in logs
			log.Printf("resolver: WARNING suffix tier matched customer %d on last %d digits", customer.ID, suffixLen)
			return customer, "suffix", nil
		}
		if !errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}

	return nil, "", domain.ErrCustomerNotFound
}

func (r *PhoneResolverImpl) lookupUser(ctx context.Context, customer *domain.Customer, canonical string) (*domain.User, error) {
	if customer.UserID != nil {
		user, err := r.userRepo.FindByID(ctx, *customer.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		log.Printf("resolver: customer %d owning key %d did not resolve, falling back to mobile", customer.ID, *customer.UserID)
	}

	for _, mobile := range MobileCandidates(customer.Mobile, r.countryCode) {
		user, err := r.userRepo.FindByMobileAndRole(ctx, mobile, domain.RoleCustomer)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}
	for _, mobile := range MobileCandidates(canonical, r.countryCode) {
		user, err := r.userRepo.FindByMobileAndRole(ctx, mobile, domain.RoleCustomer)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}
	return nil, domain.ErrUserNotFound
}
