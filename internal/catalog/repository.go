package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisansetu/internal/db"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const itemColumns = `
  id, name, COALESCE(description, ''), COALESCE(category, ''), price_cents, unit, stock,
  organic, COALESCE(farmer_id, ''), COALESCE(farmer_name, ''), COALESCE(location, ''),
  COALESCE(image_url, ''), COALESCE(image_public_id, ''), created_at`

func scanItem(row pgx.Row, extra ...any) (Item, error) {
	var it Item
	dest := []any{
		&it.ID, &it.Name, &it.Description, &it.Category, &it.PriceCents, &it.Unit, &it.Stock,
		&it.Organic, &it.FarmerID, &it.FarmerName, &it.Location,
		&it.ImageURL, &it.ImagePublicID, &it.CreatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return it, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, `
SELECT`+itemColumns+`
FROM products
WHERE id = $1
  AND is_active = true
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &it, nil
}

// List returns one page of active listings matching f plus the total match count.
func (r *Repository) List(ctx context.Context, f Filter, limit, offset int) ([]Item, int, error) {
	q, args := buildListQuery(f, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	var out []Item
	total := 0
	for rows.Next() {
		var t int
		it, err := scanItem(rows, &t)
		if err != nil {
			return nil, 0, fmt.Errorf("scan catalog item: %w", err)
		}
		if total == 0 {
			total = t
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("catalog rows: %w", err)
	}

	return out, total, nil
}

func buildListQuery(f Filter, limit, offset int) (string, []any) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	where := []string{"is_active = true"}
	args := []any{}
	arg := 1

	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, fmt.Sprintf("(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", arg, arg))
		args = append(args, s)
		arg++
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		where = append(where, fmt.Sprintf("category = $%d", arg))
		args = append(args, c)
		arg++
	}
	if f.MinPriceCents != nil {
		where = append(where, fmt.Sprintf("price_cents >= $%d", arg))
		args = append(args, *f.MinPriceCents)
		arg++
	}
	if f.MaxPriceCents != nil {
		where = append(where, fmt.Sprintf("price_cents <= $%d", arg))
		args = append(args, *f.MaxPriceCents)
		arg++
	}
	if f.OrganicOnly {
		where = append(where, "organic = true")
	}
	if fid := strings.TrimSpace(f.FarmerID); fid != "" {
		where = append(where, fmt.Sprintf("farmer_id = $%d", arg))
		args = append(args, fid)
		arg++
	}

	q := fmt.Sprintf(`
SELECT%s,
       COUNT(*) OVER() AS total
FROM products
WHERE %s
ORDER BY created_at DESC, id ASC
LIMIT $%d OFFSET $%d
`, itemColumns, strings.Join(where, "\n  AND "), arg, arg+1)

	args = append(args, limit, offset)
	return q, args
}
