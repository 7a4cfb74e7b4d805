package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/arrxxhh/walmart/internal/domain"
)

const sqliteSchema = `
    CREATE TABLE IF NOT EXISTS products (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        brand TEXT NOT NULL,
        category TEXT NOT NULL,
        price TEXT NOT NULL,
        ingredients TEXT NOT NULL DEFAULT '[]',
        allergens TEXT NOT NULL DEFAULT '[]',
        dietary_tags TEXT NOT NULL DEFAULT '[]',
        nutrition TEXT NOT NULL DEFAULT '{}',
        description TEXT NOT NULL DEFAULT '',
        image_url TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS profiles (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL DEFAULT '',
        allergies TEXT NOT NULL DEFAULT '[]',
        dietary_preferences TEXT NOT NULL DEFAULT '[]',
        restrictions TEXT NOT NULL DEFAULT '[]',
        preferred_brands TEXT NOT NULL DEFAULT '[]',
        avoid_brands TEXT NOT NULL DEFAULT '[]',
        budget_preference TEXT NOT NULL DEFAULT ''
    );

    CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
    `

// SQLiteSource reads the catalog from a SQLite database.
// List-valued columns hold JSON text; prices are decimal strings.
type SQLiteSource struct {
	Path string
}

// Load reads both tables in one pass
func (s SQLiteSource) Load(ctx context.Context) (*domain.CatalogData, error) {
	db, err := openSQLite(s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	products, err := readProducts(ctx, db)
	if err != nil {
		return nil, err
	}

	profiles, err := readProfiles(ctx, db)
	if err != nil {
		return nil, err
	}

	return &domain.CatalogData{Products: products, Profiles: profiles}, nil
}

// WriteSQLite stores data into the database at path, replacing rows with the same id
func WriteSQLite(ctx context.Context, path string, data *domain.CatalogData) error {
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	productQuery := `
        INSERT OR REPLACE INTO products (id, name, brand, category, price, ingredients, allergens, dietary_tags, nutrition, description, image_url)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, p := range data.Products {
		lists, err := encodeColumns(p.Ingredients, p.Allergens, p.DietaryTags, p.Nutrition)
		if err != nil {
			return fmt.Errorf("failed to encode product %s: %w", p.ID, err)
		}
		_, err = tx.ExecContext(ctx, productQuery,
			p.ID, p.Name, p.Brand, p.Category, p.Price.String(),
			lists[0], lists[1], lists[2], lists[3], p.Description, p.ImageURL)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	profileQuery := `
        INSERT OR REPLACE INTO profiles (id, name, allergies, dietary_preferences, restrictions, preferred_brands, avoid_brands, budget_preference)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, u := range data.Profiles {
		lists, err := encodeColumns(u.Allergies, u.DietaryPreferences, u.Restrictions, u.PreferredBrands, u.AvoidBrands)
		if err != nil {
			return fmt.Errorf("failed to encode profile %s: %w", u.ID, err)
		}
		_, err = tx.ExecContext(ctx, profileQuery,
			u.ID, u.Name, lists[0], lists[1], lists[2], lists[3], lists[4], u.BudgetPreference)
		if err != nil {
			return fmt.Errorf("failed to insert profile %s: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite catalog path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func readProducts(ctx context.Context, db *sql.DB) ([]domain.Product, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT id, name, brand, category, price, ingredients, allergens, dietary_tags, nutrition, description, image_url
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p                                         domain.Product
			price, ingredients, allergens, tags, nutr string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &price,
			&ingredients, &allergens, &tags, &nutr, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("%w: product %s price %q", domain.ErrInvalidCatalog, p.ID, price)
		}
		if err := decodeColumns(p.ID, []string{ingredients, allergens, tags, nutr},
			&p.Ingredients, &p.Allergens, &p.DietaryTags, &p.Nutrition); err != nil {
			return nil, err
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

func readProfiles(ctx context.Context, db *sql.DB) ([]domain.UserProfile, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT id, name, allergies, dietary_preferences, restrictions, preferred_brands, avoid_brands, budget_preference
        FROM profiles
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		var (
			u                                       domain.UserProfile
			allergies, prefs, restr, pref, avoid string
		)
		if err := rows.Scan(&u.ID, &u.Name, &allergies, &prefs, &restr, &pref, &avoid, &u.BudgetPreference); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		if err := decodeColumns(u.ID, []string{allergies, prefs, restr, pref, avoid},
			&u.Allergies, &u.DietaryPreferences, &u.Restrictions, &u.PreferredBrands, &u.AvoidBrands); err != nil {
			return nil, err
		}

		profiles = append(profiles, u)
	}

	return profiles, rows.Err()
}

func encodeColumns(values ...interface{}) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[i] = string(b)
	}
	return out, nil
}

func decodeColumns(id string, columns []string, targets ...interface{}) error {
	for i, col := range columns {
		if err := json.Unmarshal([]byte(col), targets[i]); err != nil {
			return fmt.Errorf("%w: row %s column %d: %v", domain.ErrInvalidCatalog, id, i, err)
		}
	}
	return nil
}
