package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"horsebox_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

// Postgres error code for unique_violation.
const uniqueViolationCode = "23505"

const leadColumns = `id, reference, session_id, customer_name, customer_email, customer_phone,
	agent_name, model_slug, model_name, total_inc_vat_pence, configuration, status,
	follow_up_sent_at, created_at, updated_at`

// Repo implements the leads repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateLead inserts a lead.
func (r *Repo) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	query := fmt.Sprintf(`
		INSERT INTO leads (
			reference, session_id, customer_name, customer_email, customer_phone,
			agent_name, model_slug, model_name, total_inc_vat_pence, configuration
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.Reference, params.SessionID, params.CustomerName, params.CustomerEmail,
		params.CustomerPhone, params.AgentName, params.ModelSlug, params.ModelName,
		params.TotalIncVatPence, params.Configuration,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Lead{}, apperr.Conflict("lead reference already exists")
		}
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	return lead, nil
}

// GetLeadByReference retrieves a lead by its public reference.
func (r *Repo) GetLeadByReference(ctx context.Context, reference string) (Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE reference = $1`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by reference: %w", err)
	}

	return lead, nil
}

// ListLeads lists leads with filters and pagination, newest first.
func (r *Repo) ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(reference ILIKE $%d OR customer_name ILIKE $%d OR customer_email ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		items = append(items, lead)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", rows.Err())
	}

	return items, total, nil
}

// NextReferenceSequence returns the next value of the lead reference sequence.
func (r *Repo) NextReferenceSequence(ctx context.Context) (int64, error) {
	var next int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('lead_reference_seq')`).Scan(&next); err != nil {
		return 0, fmt.Errorf("next lead reference: %w", err)
	}
	return next, nil
}

// MarkFollowUpSent records the follow-up send time.
func (r *Repo) MarkFollowUpSent(ctx context.Context, reference string) error {
	query := `
		UPDATE leads
		SET follow_up_sent_at = now(), updated_at = now()
		WHERE reference = $1`

	result, err := r.pool.Exec(ctx, query, reference)
	if err != nil {
		return fmt.Errorf("mark follow-up sent: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var followUpSentAt *time.Time
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&lead.ID, &lead.Reference, &lead.SessionID, &lead.CustomerName, &lead.CustomerEmail,
		&lead.CustomerPhone, &lead.AgentName, &lead.ModelSlug, &lead.ModelName,
		&lead.TotalIncVatPence, &lead.Configuration, &lead.Status,
		&followUpSentAt, &createdAt, &updatedAt,
	); err != nil {
		return Lead{}, err
	}

	if followUpSentAt != nil {
		formatted := followUpSentAt.Format(time.RFC3339)
		lead.FollowUpSentAt = &formatted
	}
	lead.CreatedAt = createdAt.Format(time.RFC3339)
	lead.UpdatedAt = updatedAt.Format(time.RFC3339)
	return lead, nil
}
