package cron

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"stock-alert/common/constant"
	"stock-alert/inbound/cron/mocks"
	"stock-alert/model"
	"stock-alert/outbound/sqlgen"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"
)

var productColumns = []string{"id", "name_en", "name_ru", "characteristics", "weight", "size", "expiry_date", "stock_quantity", "category_id", "category_name"}

const (
	testLockOwner = "scanner-test"
	testTimeout   = 10 * time.Second
)

func productRow(id int64, quantity int32) []any {
	return []any{
		id, fmt.Sprintf("Product %d", id), fmt.Sprintf("Продукт %d", id),
		pgtype.Text{}, pgtype.Numeric{}, pgtype.Text{}, pgtype.Date{},
		quantity, pgtype.Int8{}, pgtype.Text{},
	}
}

type StockCronTestSuite struct {
	suite.Suite

	ctrl      *gomock.Controller
	publisher *mocks.MockLowStockPublisher

	Querier *sqlgen.Queries
	PgxMock pgxmock.PgxPoolIface

	Cache     *redis.Client
	CacheMock redismock.ClientMock
}

func (s *StockCronTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.publisher = mocks.NewMockLowStockPublisher(s.ctrl)

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Querier = sqlgen.New(pool)

	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *StockCronTestSuite) TearDownTest() {
	s.PgxMock.Close()

	if err := s.Cache.Close(); err != nil {
		s.T().Fatalf("failed to close redis mock: %v", err)
	}

	s.ctrl.Finish()
}

func TestStockCronTestSuite(t *testing.T) {
	suite.Run(t, new(StockCronTestSuite))
}

func (s *StockCronTestSuite) newCron(threshold int32) *StockCron {
	return &StockCron{
		Querier:   s.Querier,
		Cache:     s.Cache,
		Publisher: s.publisher,
		Threshold: threshold,
		Interval:  time.Hour,
		Timeout:   testTimeout,
		LockOwner: testLockOwner,
	}
}

func (s *StockCronTestSuite) expectLock(acquired bool) {
	s.CacheMock.ExpectSetNX(constant.StockScanLock, testLockOwner, testTimeout).SetVal(acquired)
}

func (s *StockCronTestSuite) expectUnlock() {
	s.CacheMock.ExpectEval(releaseLockScript, []string{constant.StockScanLock}, testLockOwner).SetVal(int64(1))
}

func (s *StockCronTestSuite) TestRunScan() {
	tests := []struct {
		name          string
		setupMock     func()
		expectedCount int
		wantErr       bool
	}{
		{
			name: "lock error",
			setupMock: func() {
				s.CacheMock.ExpectSetNX(constant.StockScanLock, testLockOwner, testTimeout).SetErr(redis.ErrClosed)
			},
			wantErr: true,
		},
		{
			name: "lock held by another scanner",
			setupMock: func() {
				s.expectLock(false)
			},
			wantErr: true,
		},
		{
			name: "database error",
			setupMock: func() {
				s.expectLock(true)
				s.PgxMock.ExpectQuery("FROM products").
					WithArgs(int32(10)).
					WillReturnError(fmt.Errorf("database error"))
				s.expectUnlock()
			},
			wantErr: true,
		},
		{
			name: "no low stock products",
			setupMock: func() {
				s.expectLock(true)
				s.PgxMock.ExpectQuery("FROM products").
					WithArgs(int32(10)).
					WillReturnRows(pgxmock.NewRows(productColumns))
				s.expectUnlock()
			},
			expectedCount: 0,
		},
		{
			name: "one product below threshold",
			setupMock: func() {
				s.expectLock(true)
				s.PgxMock.ExpectQuery("FROM products").
					WithArgs(int32(10)).
					WillReturnRows(pgxmock.NewRows(productColumns).AddRow(productRow(1, 5)...))
				s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, product model.ProductSnapshot) error {
						s.Equal(int64(1), product.ID)
						s.Equal(int32(5), product.StockQuantity)
						s.Equal("Продукт 1", product.NameRu)
						s.Nil(product.CategoryName)
						return nil
					})
				s.expectUnlock()
			},
			expectedCount: 1,
		},
		{
			name: "publish failure does not stop the scan",
			setupMock: func() {
				s.expectLock(true)
				s.PgxMock.ExpectQuery("FROM products").
					WithArgs(int32(10)).
					WillReturnRows(pgxmock.NewRows(productColumns).
						AddRow(productRow(1, 0)...).
						AddRow(productRow(2, 9)...).
						AddRow(productRow(3, 4)...))
				gomock.InOrder(
					s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
					s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("nats: timeout")),
					s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
				)
				s.expectUnlock()
			},
			expectedCount: 2,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			count, err := s.newCron(10).RunScan(context.Background())

			if tc.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}
			s.Equal(tc.expectedCount, count)

			s.NoError(s.CacheMock.ExpectationsWereMet())
			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *StockCronTestSuite) TestRunScanReleasesOnlyOwnLock() {
	tests := []struct {
		name         string
		setupRelease func()
	}{
		{
			name: "lock taken over after expiry is left alone",
			setupRelease: func() {
				s.CacheMock.ExpectEval(releaseLockScript, []string{constant.StockScanLock}, testLockOwner).SetVal(int64(0))
			},
		},
		{
			name: "release error",
			setupRelease: func() {
				s.CacheMock.ExpectEval(releaseLockScript, []string{constant.StockScanLock}, testLockOwner).SetErr(redis.ErrClosed)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.expectLock(true)
			s.PgxMock.ExpectQuery("FROM products").
				WithArgs(int32(10)).
				WillReturnRows(pgxmock.NewRows(productColumns))
			tc.setupRelease()

			count, err := s.newCron(10).RunScan(context.Background())

			s.NoError(err)
			s.Zero(count)
			// no plain DEL is ever issued, only the owner-checked script
			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

func (s *StockCronTestSuite) TestRunScanSkipsWhileRunning() {
	stockCron := s.newCron(10)
	stockCron.running.Store(true)

	count, err := stockCron.RunScan(context.Background())

	s.ErrorIs(err, ErrScanInProgress)
	s.Zero(count)
	s.NoError(s.CacheMock.ExpectationsWereMet())
}

func (s *StockCronTestSuite) TestRunScanMapsNullableColumns() {
	s.expectLock(true)
	s.PgxMock.ExpectQuery("FROM products").
		WithArgs(int32(10)).
		WillReturnRows(pgxmock.NewRows(productColumns).AddRow(
			int64(1), "Laptop", "Ноутбук",
			pgtype.Text{String: "16GB RAM", Valid: true},
			pgtype.Numeric{Int: big.NewInt(1234567), Exp: -3, Valid: true},
			pgtype.Text{String: "30x20x2", Valid: true},
			pgtype.Date{Time: time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC), Valid: true},
			int32(5),
			pgtype.Int8{Int64: 3, Valid: true},
			pgtype.Text{String: "Electronics", Valid: true},
		))
	s.expectUnlock()

	var got model.ProductSnapshot
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, product model.ProductSnapshot) error {
			got = product
			return nil
		})

	count, err := s.newCron(10).RunScan(context.Background())

	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal("16GB RAM", *got.Characteristics)
	s.Equal("1234.567", got.Weight.String())
	s.True(decimal.RequireFromString("1234.567").Equal(*got.Weight))
	s.Equal("30x20x2", *got.Size)
	s.Equal("2027-01-02", got.ExpiryDate.String())
	s.Equal(int64(3), *got.CategoryID)
	s.Equal("Electronics", *got.CategoryName)
}

func (s *StockCronTestSuite) TestCheckProduct() {
	tests := []struct {
		name          string
		quantity      int32
		setupMock     func()
		wantPublished bool
		wantErr       bool
	}{
		{
			name:          "above threshold",
			quantity:      11,
			setupMock:     func() {},
			wantPublished: false,
		},
		{
			name:          "equal to threshold",
			quantity:      10,
			setupMock:     func() {},
			wantPublished: false,
		},
		{
			name:     "below threshold",
			quantity: 9,
			setupMock: func() {
				s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantPublished: true,
		},
		{
			name:     "publish error",
			quantity: 0,
			setupMock: func() {
				s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("kafka: leader not available"))
			},
			wantPublished: false,
			wantErr:       true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			published, err := s.newCron(10).CheckProduct(context.Background(), model.ProductSnapshot{ID: 1, StockQuantity: tc.quantity})

			s.Equal(tc.wantPublished, published)
			if tc.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}

			// the per-write path never touches the catalog or the lock
			s.NoError(s.CacheMock.ExpectationsWereMet())
			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *StockCronTestSuite) TestStart() {
	s.expectLock(true)
	s.PgxMock.ExpectQuery("FROM products").
		WithArgs(int32(10)).
		WillReturnRows(pgxmock.NewRows(productColumns).AddRow(productRow(1, 5)...))
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	s.expectUnlock()

	stockCron := s.newCron(10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		stockCron.Start(ctx)
	}()

	// the first scan runs before the first tick
	time.Sleep(100 * time.Millisecond)

	cancel()
	<-done

	s.NoError(s.CacheMock.ExpectationsWereMet())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func TestCheckProductProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		threshold := rapid.Int32Range(0, 1000).Draw(t, "threshold")
		quantity := rapid.Int32Range(0, 1000).Draw(t, "quantity")

		var calls int
		stockCron := &StockCron{
			Publisher: publisherFunc(func(ctx context.Context, product model.ProductSnapshot) error {
				calls++
				return nil
			}),
			Threshold: threshold,
		}

		published, err := stockCron.CheckProduct(context.Background(), model.ProductSnapshot{ID: 1, StockQuantity: quantity})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := quantity < threshold
		if published != want || (calls == 1) != want || calls > 1 {
			t.Fatalf("threshold=%d quantity=%d published=%v calls=%d", threshold, quantity, published, calls)
		}
	})
}

func TestRunScanPublishesOncePerRowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		threshold := rapid.Int32Range(0, 50).Draw(t, "threshold")
		quantities := rapid.SliceOfN(rapid.Int32Range(0, 100), 0, 20).Draw(t, "quantities")

		pool, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("pgxmock: %v", err)
		}
		defer pool.Close()

		rdb, cacheMock := redismock.NewClientMock()
		defer rdb.Close()

		// the catalog applies the threshold filter
		rows := pgxmock.NewRows(productColumns)
		var want []int64
		for i, q := range quantities {
			if q < threshold {
				id := int64(i + 1)
				rows.AddRow(productRow(id, q)...)
				want = append(want, id)
			}
		}

		cacheMock.ExpectSetNX(constant.StockScanLock, testLockOwner, testTimeout).SetVal(true)
		pool.ExpectQuery("FROM products").WithArgs(threshold).WillReturnRows(rows)
		cacheMock.ExpectEval(releaseLockScript, []string{constant.StockScanLock}, testLockOwner).SetVal(int64(1))

		var got []int64
		stockCron := &StockCron{
			Querier: sqlgen.New(pool),
			Cache:   rdb,
			Publisher: publisherFunc(func(ctx context.Context, product model.ProductSnapshot) error {
				if product.StockQuantity >= threshold {
					t.Fatalf("published product %d with quantity %d >= %d", product.ID, product.StockQuantity, threshold)
				}
				got = append(got, product.ID)
				return nil
			}),
			Threshold: threshold,
			Timeout:   testTimeout,
			LockOwner: testLockOwner,
		}

		count, err := stockCron.RunScan(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if count != len(want) || len(got) != len(want) {
			t.Fatalf("want %d events, got count=%d published=%d", len(want), count, len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("event %d: want product %d, got %d", i, want[i], got[i])
			}
		}
	})
}

type publisherFunc func(ctx context.Context, product model.ProductSnapshot) error

func (f publisherFunc) Publish(ctx context.Context, product model.ProductSnapshot) error {
	return f(ctx, product)
}
