package usecase

import (
	"context"
	"encoding/json"
	"time"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"github.com/rs/zerolog"
)

// 注文イベントの送信先（kafka / rabbitmq / なし）
type OrderEventPublisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
}

// 注文確定の二重送信チェック
type CheckoutGuard interface {
	Acquire(ctx context.Context, userID int64, key string) (bool, error)
	Release(ctx context.Context, userID int64, key string) error
}

type MessageOutput struct {
	Message string `json:"message"`
}

type StatusChangeOutput struct {
	Message   string `json:"message"`
	OrderID   int64  `json:"order_id"`
	NewStatus string `json:"new_status"`
}

// コミット後に呼ぶ。失敗してもリクエストは失敗させない
func publishEvent(ctx context.Context, pub OrderEventPublisher, t model.OrderEventType, o model.Order) {
	if pub == nil {
		return
	}
	ev := model.NewOrderEvent(t, o, time.Now())
	if err := pub.Publish(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("event", string(t)).
			Int64("order_id", o.ID).
			Msg("order event publish failed")
	}
}

// 注文の変更をTx内で監査ログに残す
func auditOrder(ctx context.Context, r repo.TxRepos, actorID int64, action model.AuditAction, orderID int64, before, after map[string]interface{}) error {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return err
	}

	return r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
}
