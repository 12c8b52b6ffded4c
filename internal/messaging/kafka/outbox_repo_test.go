package kafka_test

import (
	"context"
	"encoding/json"
	"testing"

	"go-settlement/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newOutboxMock(t *testing.T) (kafka.OutboxRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return kafka.NewOutboxRepository(db), mock
}

func TestNewOutboxEvent(t *testing.T) {
	payload := map[string]any{"company_id": "co-1", "created": 3}
	event, err := kafka.NewOutboxEvent("hr.settlement.generated.v1", "settlement_generated", "settlement", "co-1:2026-03:REGULAR", "rid", payload)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.Equal(t, "rid", event.RequestID)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, "co-1", decoded["company_id"])

	_, err = kafka.NewOutboxEvent("", "x", "settlement", "id", "", payload)
	assert.EqualError(t, err, "outbox topic is required")

	_, err = kafka.NewOutboxEvent("t", "x", "settlement", "id", "", make(chan int))
	assert.Error(t, err)
}

func TestValidateOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("t", "x", "settlement", "id", "", struct{}{})
	require.NoError(t, err)

	event.Status = "queued"
	assert.EqualError(t, kafka.ValidateOutboxEvent(event), "invalid outbox status: queued")

	event.Status = kafka.OutboxStatusPending
	event.ID = uuid.Nil
	assert.EqualError(t, kafka.ValidateOutboxEvent(event), "outbox id is required")
}

func TestOutboxRepository_Create(t *testing.T) {
	repo, mock := newOutboxMock(t)
	event, err := kafka.NewOutboxEvent("t", "settlement_paid", "settlement", "s-1", "", map[string]int{"a": 1})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "outbox_events"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	repo, mock := newOutboxMock(t)

	err := repo.Create(context.Background(), &kafka.OutboxEvent{ID: uuid.New(), Topic: "t", Status: kafka.OutboxStatusPending})
	assert.EqualError(t, err, "outbox payload is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	repo, mock := newOutboxMock(t)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "topic", "event_type", "payload", "status", "retry_count"}).
		AddRow(id.String(), "t", "settlement_paid", []byte(`{"a":1}`), kafka.OutboxStatusFailed, 2)
	mock.ExpectQuery(`SELECT \* FROM "outbox_events" WHERE status IN .*next_retry_at IS NULL OR next_retry_at <= .*ORDER BY created_at ASC LIMIT`).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.JSONEq(t, `{"a":1}`, string(events[0].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	repo, mock := newOutboxMock(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "outbox_events" SET .*"status"=.*WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "outbox_events" SET .*LEAST\(retry_count \+ 1, .*\) \* INTERVAL '15 seconds',"retry_count"=retry_count \+ 1.*WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), id))
	require.NoError(t, repo.MarkFailed(context.Background(), id, "broker unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
