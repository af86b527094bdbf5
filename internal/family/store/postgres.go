package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"wikisite/internal/family/metrics"
	"wikisite/internal/family/models"
	"wikisite/internal/namespace"
	"wikisite/pkg/platform/sentinel"
	platformtx "wikisite/pkg/platform/tx"
)

// Postgres persists family configuration in PostgreSQL. The store is pure
// I/O; code canonicalization and validity rules belong to the resolver.
type Postgres struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgres constructs a PostgreSQL-backed family directory.
func NewPostgres(db *sql.DB, m *metrics.Metrics) *Postgres {
	return &Postgres{db: db, metrics: m}
}

// EnsureSchema creates the directory tables when they do not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS families (
			name            TEXT PRIMARY KEY,
			code_characters TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS family_languages (
			family TEXT NOT NULL REFERENCES families(name) ON DELETE CASCADE,
			code   TEXT NOT NULL,
			PRIMARY KEY (family, code)
		);
		CREATE TABLE IF NOT EXISTS family_obsolete_codes (
			family      TEXT NOT NULL REFERENCES families(name) ON DELETE CASCADE,
			alias       TEXT NOT NULL,
			replacement TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (family, alias)
		);
		CREATE TABLE IF NOT EXISTS family_namespace_overrides (
			family         TEXT NOT NULL REFERENCES families(name) ON DELETE CASCADE,
			code           TEXT NOT NULL,
			ns_id          INT  NOT NULL,
			canonical_name TEXT NOT NULL DEFAULT '',
			custom_name    TEXT NOT NULL DEFAULT '',
			aliases        TEXT[] NOT NULL DEFAULT '{}',
			case_mode      TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (family, code, ns_id)
		);
		CREATE TABLE IF NOT EXISTS family_disamb_categories (
			family   TEXT NOT NULL REFERENCES families(name) ON DELETE CASCADE,
			code     TEXT NOT NULL,
			category TEXT NOT NULL,
			PRIMARY KEY (family, code)
		);
		CREATE TABLE IF NOT EXISTS family_doc_subpages (
			family   TEXT NOT NULL REFERENCES families(name) ON DELETE CASCADE,
			code     TEXT NOT NULL,
			subpages TEXT[] NOT NULL DEFAULT '{}',
			PRIMARY KEY (family, code)
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure family schema: %w", err)
	}
	return nil
}

// Find implements family.Directory.
func (s *Postgres) Find(ctx context.Context, name string) (*models.Family, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveFind(time.Since(start).Seconds())
	}()

	fam := &models.Family{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT code_characters FROM families WHERE name = $1`, name,
	).Scan(&fam.CodeCharacters)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("family %q: %w", name, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find family: %w", err)
	}

	if fam.Languages, err = s.languages(ctx, name); err != nil {
		return nil, err
	}
	if fam.Obsolete, err = s.obsoleteCodes(ctx, name); err != nil {
		return nil, err
	}
	if fam.NamespaceOverrides, err = s.namespaceOverrides(ctx, name); err != nil {
		return nil, err
	}
	if fam.DisambCategories, err = s.disambCategories(ctx, name); err != nil {
		return nil, err
	}
	if fam.DocSubpages, err = s.docSubpages(ctx, name); err != nil {
		return nil, err
	}
	return fam, nil
}

// Save upserts a family and all of its child rows in one transaction. A
// transaction already carried in the context (pkg/platform/tx) is joined
// instead, letting callers sync several families atomically.
func (s *Postgres) Save(ctx context.Context, fam *models.Family) error {
	if err := fam.Validate(); err != nil {
		return err
	}

	if outer, ok := platformtx.From(ctx); ok {
		return s.save(ctx, outer, fam)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save family: %w", err)
	}
	defer tx.Rollback()

	if err := s.save(ctx, tx, fam); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save family: %w", err)
	}
	return nil
}

func (s *Postgres) save(ctx context.Context, tx *sql.Tx, fam *models.Family) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO families (name, code_characters) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET code_characters = EXCLUDED.code_characters
	`, fam.Name, fam.CodeCharacters)
	if err != nil {
		return fmt.Errorf("upsert family: %w", err)
	}

	// Child rows are replaced wholesale; family files are loaded as units.
	for _, table := range []string{
		"family_languages", "family_obsolete_codes", "family_namespace_overrides",
		"family_disamb_categories", "family_doc_subpages",
	} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE family = $1`, fam.Name); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, code := range fam.Languages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO family_languages (family, code) VALUES ($1, $2)`, fam.Name, code); err != nil {
			return fmt.Errorf("insert language %s: %w", code, err)
		}
	}
	for alias, replacement := range fam.Obsolete {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO family_obsolete_codes (family, alias, replacement) VALUES ($1, $2, $3)`,
			fam.Name, alias, replacement); err != nil {
			return fmt.Errorf("insert obsolete code %s: %w", alias, err)
		}
	}
	for code, overrides := range fam.NamespaceOverrides {
		for _, ov := range overrides {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO family_namespace_overrides
					(family, code, ns_id, canonical_name, custom_name, aliases, case_mode)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, fam.Name, code, ov.ID, ov.CanonicalName, ov.CustomName, pq.Array(ov.Aliases), string(ov.Case)); err != nil {
				return fmt.Errorf("insert namespace override %s/%d: %w", code, ov.ID, err)
			}
		}
	}
	for code, category := range fam.DisambCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO family_disamb_categories (family, code, category) VALUES ($1, $2, $3)`,
			fam.Name, code, category); err != nil {
			return fmt.Errorf("insert disamb category %s: %w", code, err)
		}
	}
	for code, subpages := range fam.DocSubpages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO family_doc_subpages (family, code, subpages) VALUES ($1, $2, $3)`,
			fam.Name, code, pq.Array(subpages)); err != nil {
			return fmt.Errorf("insert doc subpages %s: %w", code, err)
		}
	}
	return nil
}

func (s *Postgres) languages(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code FROM family_languages WHERE family = $1 ORDER BY code`, name)
	if err != nil {
		return nil, fmt.Errorf("find family languages: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (s *Postgres) obsoleteCodes(ctx context.Context, name string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT alias, replacement FROM family_obsolete_codes WHERE family = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("find obsolete codes: %w", err)
	}
	defer rows.Close()

	obsolete := make(map[string]string)
	for rows.Next() {
		var alias, replacement string
		if err := rows.Scan(&alias, &replacement); err != nil {
			return nil, fmt.Errorf("scan obsolete code: %w", err)
		}
		obsolete[alias] = replacement
	}
	if len(obsolete) == 0 {
		return nil, rows.Err()
	}
	return obsolete, rows.Err()
}

func (s *Postgres) namespaceOverrides(ctx context.Context, name string) (map[string][]namespace.Override, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, ns_id, canonical_name, custom_name, aliases, case_mode
		FROM family_namespace_overrides WHERE family = $1 ORDER BY code, ns_id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("find namespace overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string][]namespace.Override)
	for rows.Next() {
		var code, caseMode string
		var ov namespace.Override
		if err := rows.Scan(&code, &ov.ID, &ov.CanonicalName, &ov.CustomName,
			pq.Array(&ov.Aliases), &caseMode); err != nil {
			return nil, fmt.Errorf("scan namespace override: %w", err)
		}
		ov.Case = namespace.CaseMode(caseMode)
		overrides[code] = append(overrides[code], ov)
	}
	if len(overrides) == 0 {
		return nil, rows.Err()
	}
	return overrides, rows.Err()
}

func (s *Postgres) disambCategories(ctx context.Context, name string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, category FROM family_disamb_categories WHERE family = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("find disamb categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[string]string)
	for rows.Next() {
		var code, category string
		if err := rows.Scan(&code, &category); err != nil {
			return nil, fmt.Errorf("scan disamb category: %w", err)
		}
		categories[code] = category
	}
	if len(categories) == 0 {
		return nil, rows.Err()
	}
	return categories, rows.Err()
}

func (s *Postgres) docSubpages(ctx context.Context, name string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, subpages FROM family_doc_subpages WHERE family = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("find doc subpages: %w", err)
	}
	defer rows.Close()

	subpages := make(map[string][]string)
	for rows.Next() {
		var code string
		var pages []string
		if err := rows.Scan(&code, pq.Array(&pages)); err != nil {
			return nil, fmt.Errorf("scan doc subpages: %w", err)
		}
		subpages[code] = pages
	}
	if len(subpages) == 0 {
		return nil, rows.Err()
	}
	return subpages, rows.Err()
}
