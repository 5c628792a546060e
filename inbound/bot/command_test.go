package bot

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"stock-alert/common/constant"
	"stock-alert/common/errs"
	"stock-alert/inbound/bot/mocks"
	"stock-alert/model"
	"stock-alert/outbound/catalog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"pgregory.net/rapid"
)

const testChatID int64 = 98765

func ptr[T any](v T) *T {
	return &v
}

type CommandBotTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	catalog *mocks.MockCatalog
	replier *mocks.MockReplier
	bot     CommandBot
}

func (s *CommandBotTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.catalog = mocks.NewMockCatalog(s.ctrl)
	s.replier = mocks.NewMockReplier(s.ctrl)
	s.bot = CommandBot{
		Catalog: s.catalog,
		Replier: s.replier,
		Printer: message.NewPrinter(language.Russian),
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *CommandBotTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCommandBotTestSuite(t *testing.T) {
	suite.Run(t, new(CommandBotTestSuite))
}

func (s *CommandBotTestSuite) expectReply(text string) {
	s.replier.EXPECT().Send(gomock.Any(), testChatID, text).Return(true)
}

func (s *CommandBotTestSuite) TestOnCommand() {
	laptop := model.ProductSnapshot{
		ID:              1,
		NameRu:          "Ноутбук",
		NameEn:          "Laptop",
		Characteristics: ptr("16GB RAM"),
		Weight:          ptr(decimal.RequireFromString("1.5")),
		Size:            ptr("30x20x2"),
		ExpiryDate:      ptr(model.NewDate(2027, time.January, 2)),
		StockQuantity:   5,
		CategoryID:      ptr(int64(3)),
		CategoryName:    ptr("Electronics"),
	}

	testCases := []struct {
		name      string
		text      string
		setupMock func()
	}{
		{
			name: "all products",
			text: "/allproducts",
			setupMock: func() {
				s.catalog.EXPECT().ListProducts(gomock.Any()).Return([]model.ProductSnapshot{
					{ID: 1, NameRu: "Ноутбук", NameEn: "Laptop", StockQuantity: 5},
					{ID: 2, NameRu: "Мышь", NameEn: "Mouse", StockQuantity: 40},
					{ID: 1500, NameRu: "Кабель", NameEn: "Cable", StockQuantity: 2500},
				}, nil)
				s.expectReply("Список всех продуктов:\n" +
					"ID: 1, Название: Ноутбук (Laptop), Остаток: 5\n" +
					"ID: 2, Название: Мышь (Mouse), Остаток: 40\n" +
					"ID: 1500, Название: Кабель (Cable), Остаток: 2\u00a0500\n")
			},
		},
		{
			name: "all products with surrounding whitespace",
			text: "  /allproducts \n",
			setupMock: func() {
				s.catalog.EXPECT().ListProducts(gomock.Any()).Return([]model.ProductSnapshot{{ID: 1, NameRu: "Хлеб", NameEn: "Bread", StockQuantity: 0}}, nil)
				s.expectReply("Список всех продуктов:\nID: 1, Название: Хлеб (Bread), Остаток: 0\n")
			},
		},
		{
			name: "all products empty catalog",
			text: "/allproducts",
			setupMock: func() {
				s.catalog.EXPECT().ListProducts(gomock.Any()).Return([]model.ProductSnapshot{}, nil)
				s.expectReply(constant.ReplyProductsNotFound)
			},
		},
		{
			name: "all products catalog error",
			text: "/allproducts",
			setupMock: func() {
				s.catalog.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("connection refused"))
				s.expectReply(constant.ReplyProductsFailed)
			},
		},
		{
			name: "product with category",
			text: "/product 1",
			setupMock: func() {
				s.catalog.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(laptop, nil)
				s.expectReply("Информация о продукте ID 1:\n" +
					"- Название: Laptop / Ноутбук\n" +
					"- Характеристики: 16GB RAM\n" +
					"- Вес: 1.5 кг\n" +
					"- Размер: 30x20x2\n" +
					"- Срок годности: 2027-01-02\n" +
					"- Остаток: 5 шт.\n" +
					"- Категория: Electronics\n")
			},
		},
		{
			name: "product without category renders none markers",
			text: "/product 2",
			setupMock: func() {
				s.catalog.EXPECT().GetProduct(gomock.Any(), int64(2)).Return(model.ProductSnapshot{ID: 2, NameRu: "Мышь", NameEn: "Mouse", StockQuantity: 3}, nil)
				s.expectReply("Информация о продукте ID 2:\n" +
					"- Название: Mouse / Мышь\n" +
					"- Характеристики: нет\n" +
					"- Вес: нет\n" +
					"- Размер: нет\n" +
					"- Срок годности: нет\n" +
					"- Остаток: 3 шт.\n")
			},
		},
		{
			name: "product with nested category",
			text: "/product 4",
			setupMock: func() {
				s.catalog.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(model.ProductSnapshot{
					ID: 4, NameRu: "Чай", NameEn: "Tea", StockQuantity: 8,
					Category: &model.Category{ID: 9, Name: "Drinks"},
				}, nil)
				s.replier.EXPECT().Send(gomock.Any(), testChatID, gomock.Any()).DoAndReturn(
					func(ctx context.Context, chatID int64, text string) bool {
						s.Contains(text, "- Категория: Drinks\n")
						return true
					})
			},
		},
		{
			name: "product invalid id",
			text: "/product abc",
			setupMock: func() {
				s.expectReply(constant.ReplyInvalidIdFormat)
			},
		},
		{
			name: "product missing id",
			text: "/product",
			setupMock: func() {
				s.expectReply(constant.ReplyProductIdRequired)
			},
		},
		{
			name: "product missing id with trailing spaces",
			text: "/product   ",
			setupMock: func() {
				s.expectReply(constant.ReplyProductIdRequired)
			},
		},
		{
			name: "product not found",
			text: "/product 77",
			setupMock: func() {
				s.catalog.EXPECT().GetProduct(gomock.Any(), int64(77)).Return(model.ProductSnapshot{}, errs.ErrProductNotFound)
				s.expectReply("Продукт с ID 77 не найден.")
			},
		},
		{
			name: "product catalog server error",
			text: "/product 5",
			setupMock: func() {
				s.catalog.EXPECT().GetProduct(gomock.Any(), int64(5)).Return(model.ProductSnapshot{}, &errs.HttpError{Code: 500, Message: "Internal Server Error"})
				s.expectReply(constant.ReplyProductFailed)
			},
		},
		{
			name: "product extra arguments use the first",
			text: "/product 1 2",
			setupMock: func() {
				s.catalog.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(laptop, nil)
				s.replier.EXPECT().Send(gomock.Any(), testChatID, gomock.Any()).Return(true)
			},
		},
		{
			name: "products prefix is unknown",
			text: "/products",
			setupMock: func() {
				s.expectReply(constant.ReplyUnknownCommand)
			},
		},
		{
			name: "allproducts suffix is unknown",
			text: "/allproductsX",
			setupMock: func() {
				s.expectReply(constant.ReplyUnknownCommand)
			},
		},
		{
			name: "empty text",
			text: "",
			setupMock: func() {
				s.expectReply(constant.ReplyUnknownCommand)
			},
		},
		{
			name: "plain text",
			text: "hello",
			setupMock: func() {
				s.expectReply(constant.ReplyUnknownCommand)
			},
		},
		{
			name: "start",
			text: "/start",
			setupMock: func() {
				s.expectReply(constant.ReplyHelp)
			},
		},
		{
			name: "help",
			text: "/help",
			setupMock: func() {
				s.expectReply(constant.ReplyHelp)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			s.bot.OnCommand(context.Background(), model.ChatCommand{ChatID: testChatID, Text: tc.text})
		})
	}
}

func (s *CommandBotTestSuite) TestOnCommandCatalogNullBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	bot := CommandBot{
		Catalog: catalog.NewClient(server.URL, time.Second),
		Replier: s.replier,
	}

	s.expectReply("Продукт с ID 7 не найден.")

	bot.OnCommand(context.Background(), model.ChatCommand{ChatID: testChatID, Text: "/product 7"})
}

type countingReplier struct {
	sends int
}

func (r *countingReplier) Send(ctx context.Context, chatID int64, text string) bool {
	r.sends++
	return true
}

type stubCatalog struct {
	products []model.ProductSnapshot
	err      error
}

func (c stubCatalog) ListProducts(ctx context.Context) ([]model.ProductSnapshot, error) {
	return c.products, c.err
}

func (c stubCatalog) GetProduct(ctx context.Context, id int64) (model.ProductSnapshot, error) {
	if c.err != nil {
		return model.ProductSnapshot{}, c.err
	}
	for _, product := range c.products {
		if product.ID == id {
			return product, nil
		}
	}
	return model.ProductSnapshot{}, errs.ErrProductNotFound
}

func TestOnCommandRepliesExactlyOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.OneOf(
			rapid.String(),
			rapid.SampledFrom([]string{"/allproducts", "/product", "/start", "/help", "/products"}),
			rapid.Custom(func(t *rapid.T) string {
				return "/product " + rapid.StringMatching(`-?[0-9a-z]{0,6}`).Draw(t, "arg")
			}),
		).Draw(t, "text")

		var catalogErr error
		if rapid.Bool().Draw(t, "catalogFails") {
			catalogErr = errors.New("catalog down")
		}

		replier := &countingReplier{}
		bot := CommandBot{
			Catalog: stubCatalog{
				products: []model.ProductSnapshot{{ID: 1, NameRu: "Ноутбук", NameEn: "Laptop", StockQuantity: 5}},
				err:      catalogErr,
			},
			Replier: replier,
		}

		bot.OnCommand(context.Background(), model.ChatCommand{ChatID: testChatID, Text: text})

		if replier.sends != 1 {
			t.Fatalf("text %q produced %d replies", text, replier.sends)
		}
	})
}
