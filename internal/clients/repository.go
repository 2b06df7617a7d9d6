package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("client not found")
	ErrAlreadyExists = errors.New("client already exists")
)

// Repository persists clients in PostgreSQL.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context, req ListClientsRequest) ([]Client, int, error)
	Create(ctx context.Context, client Client) error
	Update(ctx context.Context, client Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const clientColumns = `id, kind, name, cpf, cnpj, state_registration, address, city, zip_code, phone, email, created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Kind, &c.Name, &c.CPF, &c.CNPJ, &c.StateRegistration,
		&c.Address, &c.City, &c.ZipCode, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

func (r *repository) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	where := ""
	args := []any{}
	if req.Search != nil && *req.Search != "" {
		where = `WHERE name ILIKE $1 OR phone ILIKE $1 OR city ILIKE $1`
		args = append(args, "%"+*req.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM clients %s ORDER BY name LIMIT $%d OFFSET $%d`,
		clientColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := []Client{}
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.CPF, &c.CNPJ, &c.StateRegistration,
			&c.Address, &c.City, &c.ZipCode, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, client Client) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO clients (id, kind, name, cpf, cnpj, state_registration, address, city, zip_code, phone, email, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())`,
		client.ID, string(client.Kind), client.Name, client.CPF, client.CNPJ, client.StateRegistration,
		client.Address, client.City, client.ZipCode, client.Phone, client.Email)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *repository) Update(ctx context.Context, client Client) error {
	tag, err := r.pool.Exec(ctx, `UPDATE clients SET kind=$2, name=$3, cpf=$4, cnpj=$5, state_registration=$6,
address=$7, city=$8, zip_code=$9, phone=$10, email=$11, updated_at=NOW() WHERE id=$1`,
		client.ID, string(client.Kind), client.Name, client.CPF, client.CNPJ, client.StateRegistration,
		client.Address, client.City, client.ZipCode, client.Phone, client.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
