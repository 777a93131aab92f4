package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNotPending = errors.New("submission is not pending")
)

type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(pool *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{pool: pool}
}

func (r *SubmissionRepo) Create(ctx context.Context, authorID int64, body, photoID, videoID string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if authorID <= 0 || strings.TrimSpace(body) == "" {
		return 0, fmt.Errorf("invalid submission payload")
	}
	if photoID != "" && videoID != "" {
		return 0, fmt.Errorf("submission cannot carry both photo and video")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO submissions (author_id, body, photo_id, video_id, status, created_at)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), 'PENDING', NOW())
RETURNING id
`, authorID, body, photoID, videoID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}

	return id, nil
}

func (r *SubmissionRepo) GetByID(ctx context.Context, id int64) (model.Submission, error) {
	if r.pool == nil {
		return model.Submission{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Submission{}, fmt.Errorf("invalid submission id")
	}

	rows, err := r.pool.Query(ctx, selectSubmission+` WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return model.Submission{}, fmt.Errorf("query submission: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Submission{}, fmt.Errorf("query submission: %w", err)
		}
		return model.Submission{}, ErrSubmissionNotFound
	}

	return scanSubmission(rows)
}

func (r *SubmissionRepo) ListPending(ctx context.Context) ([]model.Submission, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, selectSubmission+`
 WHERE status = 'PENDING'
 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func (r *SubmissionRepo) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]model.Submission, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if authorID <= 0 {
		return nil, fmt.Errorf("invalid author id")
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, selectSubmission+`
 WHERE author_id = $1
 ORDER BY created_at DESC, id DESC
 LIMIT $2`, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions by author: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// MarkApproved flips a PENDING row to APPROVED. The status guard in the
// WHERE clause makes the transition single-shot: a second click on the same
// button matches zero rows and surfaces ErrSubmissionNotPending.
func (r *SubmissionRepo) MarkApproved(ctx context.Context, id, reviewerID int64, comment string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid submission id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE submissions
SET status = 'APPROVED',
	accept_comment = NULLIF($3, ''),
	decided_at = NOW(),
	decided_by = $2
WHERE id = $1 AND status = 'PENDING'
`, id, reviewerID, strings.TrimSpace(comment))
	if err != nil {
		return fmt.Errorf("mark submission approved: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, id)
	}
	return nil
}

func (r *SubmissionRepo) MarkRejected(ctx context.Context, id, reviewerID int64, reason string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid submission id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE submissions
SET status = 'REJECTED',
	rejection_reason = $3,
	decided_at = NOW(),
	decided_by = $2
WHERE id = $1 AND status = 'PENDING'
`, id, reviewerID, strings.TrimSpace(reason))
	if err != nil {
		return fmt.Errorf("mark submission rejected: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, id)
	}
	return nil
}

func (r *SubmissionRepo) RejectionReasons(ctx context.Context, ids []int64) (map[int64]string, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	reasons := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return reasons, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, rejection_reason
FROM submissions
WHERE id = ANY($1) AND rejection_reason IS NOT NULL
`, ids)
	if err != nil {
		return nil, fmt.Errorf("query rejection reasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var reason string
		if err := rows.Scan(&id, &reason); err != nil {
			return nil, fmt.Errorf("scan rejection reason: %w", err)
		}
		reasons[id] = reason
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rejection reasons: %w", err)
	}

	return reasons, nil
}

func (r *SubmissionRepo) classifyMissedUpdate(ctx context.Context, id int64) error {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM submissions WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSubmissionNotFound
	}
	if err != nil {
		return fmt.Errorf("check submission status: %w", err)
	}
	return ErrSubmissionNotPending
}

const selectSubmission = `
SELECT id, author_id, body, photo_id, video_id, status, rejection_reason, accept_comment, created_at, decided_at, decided_by
FROM submissions`

func scanSubmission(rows pgx.Rows) (model.Submission, error) {
	var (
		s         model.Submission
		photoID   *string
		videoID   *string
		reason    *string
		comment   *string
		status    string
		decidedAt *time.Time
		decidedBy *int64
	)

	if err := rows.Scan(&s.ID, &s.AuthorID, &s.Body, &photoID, &videoID, &status, &reason, &comment, &s.CreatedAt, &decidedAt, &decidedBy); err != nil {
		return model.Submission{}, fmt.Errorf("scan submission: %w", err)
	}

	if photoID != nil {
		s.PhotoID = *photoID
	}
	if videoID != nil {
		s.VideoID = *videoID
	}
	if reason != nil {
		s.RejectionReason = *reason
	}
	if comment != nil {
		s.AcceptComment = *comment
	}
	s.Status = enums.ParseSubmissionStatus(status)
	s.DecidedAt = decidedAt
	s.DecidedBy = decidedBy

	return s, nil
}

func collectSubmissions(rows pgx.Rows) ([]model.Submission, error) {
	submissions := make([]model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return submissions, nil
}
