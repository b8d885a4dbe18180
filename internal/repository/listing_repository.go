package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
)

// ListingFilter captures browse parameters. Nil fields are not applied.
type ListingFilter struct {
	Status    *domain.ListingStatus
	Category  *domain.Category
	Condition *domain.Condition
	MinPrice  *float64
	MaxPrice  *float64
	Limit     int
	Offset    int
}

// ListingRepository encapsulates listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
	Delete(ctx context.Context, id string) error
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

const listingColumns = `l.id, l.title, l.description, l.price, l.category, l.condition, l.images,
       l.address, l.city, l.state, l.lat, l.lng, l.seller_id, l.status, l.views, l.created_at`

const sellerColumns = `u.id, u.name, u.email, u.address, u.city, u.state, u.user_type`

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (title, description, price, category, condition, images,
            address, city, state, lat, lng, seller_id, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, views, created_at`
	return r.pool.QueryRow(ctx, query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Condition,
		listing.Images,
		listing.Location.Address,
		listing.Location.City,
		listing.Location.State,
		listing.Location.Coordinates.Lat,
		listing.Location.Coordinates.Lng,
		listing.SellerID,
		listing.Status,
	).Scan(&listing.ID, &listing.Views, &listing.CreatedAt)
}

// GetByID returns the listing with its seller projection attached.
func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s
        FROM listings l
        JOIN users u ON u.id = l.seller_id
        WHERE l.id=$1`, listingColumns, sellerColumns)

	row := r.pool.QueryRow(ctx, query, id)
	return scanListingWithSeller(row)
}

// IncrementViews bumps the counter by one in a single atomic update and
// returns the new value. pgx.ErrNoRows signals a missing listing.
func (r *listingRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE listings SET views = views + 1 WHERE id=$1 RETURNING views`
	var views int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	clauses, args := buildListingClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s, %s
        FROM listings l
        JOIN users u ON u.id = l.seller_id
        WHERE %s
        ORDER BY l.created_at DESC
        LIMIT %d OFFSET %d`, listingColumns, sellerColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *listingRepository) Count(ctx context.Context, filter ListingFilter) (int64, error) {
	clauses, args := buildListingClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM listings l WHERE %s`, strings.Join(clauses, " AND "))

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s
        FROM listings l
        JOIN users u ON u.id = l.seller_id
        WHERE l.seller_id=$1
        ORDER BY l.created_at DESC`, listingColumns, sellerColumns)

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func buildListingClauses(filter ListingFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("l.status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("l.category=$%d", len(args)))
	}
	if filter.Condition != nil {
		args = append(args, *filter.Condition)
		clauses = append(clauses, fmt.Sprintf("l.condition=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("l.price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("l.price <= $%d", len(args)))
	}
	return clauses, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListingWithSeller(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var seller domain.PublicUser
	if err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.Category,
		&listing.Condition,
		&listing.Images,
		&listing.Location.Address,
		&listing.Location.City,
		&listing.Location.State,
		&listing.Location.Coordinates.Lat,
		&listing.Location.Coordinates.Lng,
		&listing.SellerID,
		&listing.Status,
		&listing.Views,
		&listing.CreatedAt,
		&seller.ID,
		&seller.Name,
		&seller.Email,
		&seller.Location.Address,
		&seller.Location.City,
		&seller.Location.State,
		&seller.Role,
	); err != nil {
		return nil, err
	}
	listing.Seller = &seller
	return &listing, nil
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	var result []domain.Listing
	for rows.Next() {
		listing, err := scanListingWithSeller(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *listing)
	}
	return result, rows.Err()
}
