package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

type InsertActivityLogParams struct {
	MerchantID uuid.UUID
	CompanyID  *uuid.UUID
	Type       domain.ActivityType
	Payload    json.RawMessage
}

const insertActivityLog = `
INSERT INTO activity_logs (id, merchant_id, company_id, type, payload)
VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) InsertActivityLog(ctx context.Context, arg InsertActivityLogParams) error {
	_, err := q.db.Exec(
		ctx,
		insertActivityLog,
		uuid.New(),
		arg.MerchantID,
		arg.CompanyID,
		string(arg.Type),
		[]byte(arg.Payload),
	)
	return err
}

type FindActivityLogsByCartParams struct {
	MerchantID uuid.UUID
	CartID     uuid.UUID
	Limit      int32
}

const findActivityLogsByCart = `
SELECT id, merchant_id, company_id, type, payload, created_at
FROM activity_logs
WHERE merchant_id = $1 AND payload->>'cartId' = $2::text
ORDER BY created_at DESC
LIMIT $3
`

func (q *Queries) FindActivityLogsByCart(
	ctx context.Context,
	arg FindActivityLogsByCartParams,
) ([]domain.ActivityLog, error) {
	rows, err := q.db.Query(ctx, findActivityLogsByCart, arg.MerchantID, arg.CartID.String(), arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	logs := []domain.ActivityLog{}
	for rows.Next() {
		var (
			l       domain.ActivityLog
			logType string
			payload []byte
		)
		if err := rows.Scan(&l.ID, &l.MerchantID, &l.CompanyID, &logType, &payload, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Type = domain.ActivityType(logType)
		l.Payload = json.RawMessage(payload)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
