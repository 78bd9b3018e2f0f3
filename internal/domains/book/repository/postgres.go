package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booklibrary-backend/internal/domains/book/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, authors, publish_year, genre, description, cover_url, status, created_date, updated_date`

func (r *postgresRepository) List(ctx context.Context) ([]model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM custom_books
		ORDER BY created_date DESC, id DESC
	`, bookColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list custom books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom books rows: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM custom_books
		WHERE id = $1
	`, bookColumns)

	row := r.pool.QueryRow(ctx, query, id)
	book, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	return book, nil
}

func (r *postgresRepository) Insert(ctx context.Context, b *model.Book) error {
	authors, err := serializeAuthors(b.Authors)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO custom_books
			(id, title, authors, publish_year, genre, description, cover_url, status, created_date, updated_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		b.ID, b.Title, authors, b.PublishYear, b.Genre, b.Description,
		b.CoverURL, b.Status, b.CreatedDate, b.UpdatedDate,
	)
	if err != nil {
		return fmt.Errorf("insert custom book %s: %w", b.ID, err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) error {
	authors, err := serializeAuthors(b.Authors)
	if err != nil {
		return err
	}

	query := `
		UPDATE custom_books
		SET title = $2, authors = $3, publish_year = $4, genre = $5,
		    description = $6, cover_url = $7, status = $8, updated_date = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, authors, b.PublishYear, b.Genre, b.Description,
		b.CoverURL, b.Status, b.UpdatedDate,
	)
	if err != nil {
		return fmt.Errorf("update custom book %s: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		// Lost a race with a concurrent delete after the existence check.
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM custom_books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete custom book %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// scanBook reads one row and expands the serialized authors column.
func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b          model.Book
		rawAuthors string
	)

	err := row.Scan(
		&b.ID, &b.Title, &rawAuthors, &b.PublishYear, &b.Genre,
		&b.Description, &b.CoverURL, &b.Status, &b.CreatedDate, &b.UpdatedDate,
	)
	if err != nil {
		return nil, err
	}

	b.Authors, err = deserializeAuthors(rawAuthors)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", b.ID, err)
	}

	b.IsCustom = true
	return &b, nil
}

func serializeAuthors(authors []string) (string, error) {
	data, err := json.Marshal(authors)
	if err != nil {
		return "", fmt.Errorf("serialize authors: %w", err)
	}
	return string(data), nil
}

func deserializeAuthors(raw string) ([]string, error) {
	var authors []string
	if err := json.Unmarshal([]byte(raw), &authors); err != nil {
		return nil, fmt.Errorf("malformed authors column: %w", err)
	}
	if len(authors) == 0 {
		return []string{model.UnknownAuthor}, nil
	}
	return authors, nil
}
