package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"stock-alert/common"
	"stock-alert/common/constant"
	"stock-alert/common/otel"
	"stock-alert/model"
	"stock-alert/outbound/sqlgen"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -destination=mocks/mock_stock.go -package=mocks stock-alert/inbound/cron LowStockPublisher,PostWriteHook

var ErrScanInProgress = errors.New("stock scan already in progress")

// releaseLockScript deletes the scan lock only while it still holds our owner value.
const releaseLockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

type LowStockPublisher interface {
	Publish(ctx context.Context, product model.ProductSnapshot) error
}

// PostWriteHook is invoked by the catalog write path with the product it just stored.
type PostWriteHook interface {
	CheckProduct(ctx context.Context, product model.ProductSnapshot) (bool, error)
}

type StockCron struct {
	Querier   *sqlgen.Queries
	Cache     *redis.Client
	Publisher LowStockPublisher

	Threshold int32
	Interval  time.Duration
	Timeout   time.Duration
	LockOwner string

	running atomic.Bool
}

func (in *StockCron) Start(ctx context.Context) {
	scanTicker := time.NewTicker(in.Interval)
	defer scanTicker.Stop()

	in.scan(ctx)

	slog.Info("stock cron started", slog.Duration("interval", in.Interval), slog.Int("threshold", int(in.Threshold)))

	for {
		select {
		case <-scanTicker.C:
			in.scan(ctx)
		case <-ctx.Done():
			slog.Info("stock cron stopped")
			return
		}
	}
}

func (in *StockCron) scan(ctx context.Context) {
	_, err := in.RunScan(ctx)
	if errors.Is(err, ErrScanInProgress) {
		slog.InfoContext(ctx, "skipping stock scan tick", slog.Any(constant.LogFieldErr, err))
	}
}

// RunScan publishes one event per product below the threshold and returns how
// many were accepted by the channel. A query failure aborts the whole scan.
func (in *StockCron) RunScan(ctx context.Context) (int, error) {
	if !in.running.CompareAndSwap(false, true) {
		return 0, ErrScanInProgress
	}
	defer in.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	ctx, span := otel.Tracer.Start(ctx, "StockCron.RunScan")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	release, err := in.acquireLock(ctx)
	if err != nil {
		if !errors.Is(err, ErrScanInProgress) {
			slog.ErrorContext(ctx, "failed to acquire stock scan lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			common.UtilSpanError(span, err)
		}
		return 0, err
	}
	defer release()

	slog.DebugContext(ctx, "scanning low stock products", traceIdAttr, slog.Int("threshold", int(in.Threshold)))

	rows, err := in.Querier.FindProductsBelowQuantity(ctx, in.Threshold)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find low stock products", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return 0, fmt.Errorf("find low stock products: %w", err)
	}

	if len(rows) == 0 {
		slog.DebugContext(ctx, "no low stock products found", traceIdAttr)
		return 0, nil
	}

	slog.InfoContext(ctx, "found products with low stock", traceIdAttr, slog.Int(constant.LogFieldCount, len(rows)))

	published := 0
	for _, row := range rows {
		if err := in.Publisher.Publish(ctx, toSnapshot(row)); err != nil {
			slog.ErrorContext(ctx, "failed to publish low stock event", traceIdAttr,
				slog.Int64(constant.LogFieldProductId, row.ID),
				slog.Any(constant.LogFieldErr, err))
			continue
		}
		published++
	}

	span.SetAttributes(attribute.Int("stock.scan.published", published))

	return published, nil
}

// CheckProduct runs the threshold check for a single just-written product
// without querying the catalog. It is safe to call concurrently with RunScan.
func (in *StockCron) CheckProduct(ctx context.Context, product model.ProductSnapshot) (bool, error) {
	if product.StockQuantity >= in.Threshold {
		return false, nil
	}

	ctx, span := otel.Tracer.Start(ctx, "StockCron.CheckProduct")
	defer span.End()

	if err := in.Publisher.Publish(ctx, product); err != nil {
		slog.ErrorContext(ctx, "failed to publish low stock event", common.ExtractTraceIDFromCtx(ctx),
			slog.Int64(constant.LogFieldProductId, product.ID),
			slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return false, err
	}

	slog.InfoContext(ctx, "sent low stock notification", slog.Int64(constant.LogFieldProductId, product.ID), slog.String("name", product.NameRu))
	return true, nil
}

func (in *StockCron) acquireLock(ctx context.Context) (func(), error) {
	owner := in.LockOwner
	if owner == "" {
		owner = ulid.Make().String()
	}

	ttl := in.Timeout
	if ttl <= 0 {
		ttl = constant.StockScanLockDefaultTTL
	}

	acquired, err := in.Cache.SetNX(ctx, constant.StockScanLock, owner, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("set scan lock: %w", err)
	}

	if !acquired {
		return nil, ErrScanInProgress
	}

	return func() {
		// the scan context may already be expired here
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		released, err := in.Cache.Eval(releaseCtx, releaseLockScript, []string{constant.StockScanLock}, owner).Int()
		if err != nil {
			slog.WarnContext(ctx, "failed to release stock scan lock", slog.Any(constant.LogFieldErr, err))
			return
		}

		if released == 0 {
			slog.WarnContext(ctx, "stock scan lock expired before release", slog.String("owner", owner))
		}
	}, nil
}

func toSnapshot(row sqlgen.FindProductsBelowQuantityRow) model.ProductSnapshot {
	product := model.ProductSnapshot{
		ID:            row.ID,
		NameRu:        row.NameRu,
		NameEn:        row.NameEn,
		StockQuantity: row.StockQuantity,
	}

	if row.Characteristics.Valid {
		product.Characteristics = &row.Characteristics.String
	}
	if row.Weight.Valid && !row.Weight.NaN && row.Weight.InfinityModifier == pgtype.Finite && row.Weight.Int != nil {
		weight := decimal.NewFromBigInt(row.Weight.Int, row.Weight.Exp)
		product.Weight = &weight
	}
	if row.Size.Valid {
		product.Size = &row.Size.String
	}
	if row.ExpiryDate.Valid {
		expiry := model.Date{Time: row.ExpiryDate.Time}
		product.ExpiryDate = &expiry
	}
	if row.CategoryID.Valid {
		product.CategoryID = &row.CategoryID.Int64
	}
	if row.CategoryName.Valid {
		product.CategoryName = &row.CategoryName.String
	}

	return product
}
