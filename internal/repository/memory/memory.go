// Package memory provides in-memory repository implementations that
// mirror the Postgres semantics (case-insensitive email lookup, atomic
// view increments, newest-first ordering). They back the service and
// transport tests without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/repository"
)

// UserRepository stores users in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository builds an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return &duplicateKeyError{}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Delete removes a user; used to simulate accounts that vanish between
// token issuance and profile retrieval.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type duplicateKeyError struct{}

func (e *duplicateKeyError) Error() string { return "duplicate key value violates unique constraint" }

type storedListing struct {
	listing domain.Listing
	seq     int64
}

// ListingRepository stores listings in memory and resolves seller
// projections against a UserRepository, like the SQL join does.
type ListingRepository struct {
	mu       sync.Mutex
	users    *UserRepository
	listings map[string]*storedListing
	seq      int64
}

// NewListingRepository builds an empty store.
func NewListingRepository(users *UserRepository) *ListingRepository {
	return &ListingRepository{users: users, listings: make(map[string]*storedListing)}
}

func (r *ListingRepository) Create(_ context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing.ID = uuid.NewString()
	listing.CreatedAt = time.Now()
	r.seq++
	stored := *listing
	stored.Seller = nil
	r.listings[listing.ID] = &storedListing{listing: stored, seq: r.seq}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	stored, ok := r.listings[id]
	if !ok {
		r.mu.Unlock()
		return nil, pgx.ErrNoRows
	}
	listing := stored.listing
	r.mu.Unlock()

	return r.attachSeller(ctx, listing)
}

func (r *ListingRepository) IncrementViews(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.listings[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	stored.listing.Views++
	return stored.listing.Views, nil
}

func (r *ListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	matches := r.matching(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matches) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}

	page := make([]domain.Listing, 0, end-offset)
	for _, listing := range matches[offset:end] {
		withSeller, err := r.attachSeller(ctx, listing)
		if err != nil {
			return nil, err
		}
		page = append(page, *withSeller)
	}
	return page, nil
}

func (r *ListingRepository) Count(_ context.Context, filter repository.ListingFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	r.mu.Lock()
	entries := make([]*storedListing, 0)
	for _, stored := range r.listings {
		if stored.listing.SellerID == sellerID {
			entries = append(entries, stored)
		}
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	result := make([]domain.Listing, 0, len(entries))
	for _, stored := range entries {
		withSeller, err := r.attachSeller(ctx, stored.listing)
		if err != nil {
			return nil, err
		}
		result = append(result, *withSeller)
	}
	return result, nil
}

func (r *ListingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.listings, id)
	return nil
}

func (r *ListingRepository) matching(filter repository.ListingFilter) []domain.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*storedListing, 0, len(r.listings))
	for _, stored := range r.listings {
		if matchesFilter(stored.listing, filter) {
			entries = append(entries, stored)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	result := make([]domain.Listing, 0, len(entries))
	for _, stored := range entries {
		result = append(result, stored.listing)
	}
	return result
}

func matchesFilter(listing domain.Listing, filter repository.ListingFilter) bool {
	if filter.Status != nil && listing.Status != *filter.Status {
		return false
	}
	if filter.Category != nil && listing.Category != *filter.Category {
		return false
	}
	if filter.Condition != nil && listing.Condition != *filter.Condition {
		return false
	}
	if filter.MinPrice != nil && listing.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && listing.Price > *filter.MaxPrice {
		return false
	}
	return true
}

func (r *ListingRepository) attachSeller(ctx context.Context, listing domain.Listing) (*domain.Listing, error) {
	seller, err := r.users.GetByID(ctx, listing.SellerID)
	if err != nil {
		return nil, err
	}
	public := seller.Public()
	listing.Seller = &public
	return &listing, nil
}
