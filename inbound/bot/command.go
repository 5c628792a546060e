package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"stock-alert/common"
	"stock-alert/common/constant"
	"stock-alert/common/errs"
	"stock-alert/common/otel"
	"stock-alert/model"
	"strconv"
	"strings"

	"golang.org/x/text/message"
)

//go:generate mockgen -destination=mocks/mock_command.go -package=mocks stock-alert/inbound/bot Catalog,Replier

type Catalog interface {
	ListProducts(ctx context.Context) ([]model.ProductSnapshot, error)
	GetProduct(ctx context.Context, id int64) (model.ProductSnapshot, error)
}

type Replier interface {
	Send(ctx context.Context, chatID int64, text string) bool
}

type CommandBot struct {
	Catalog Catalog
	Replier Replier
	Printer *message.Printer
}

// OnCommand answers one chat command with exactly one reply.
func (in CommandBot) OnCommand(ctx context.Context, cmd model.ChatCommand) {
	ctx, span := otel.Tracer.Start(ctx, "CommandBot.OnCommand")
	defer span.End()

	text := strings.TrimSpace(cmd.Text)

	slog.DebugContext(ctx, "chat command receive request", slog.Int64(constant.LogFieldChatId, cmd.ChatID), slog.String(constant.LogFieldPayload, text), common.ExtractTraceIDFromCtx(ctx))

	in.Replier.Send(ctx, cmd.ChatID, in.reply(ctx, text))
}

func (in CommandBot) reply(ctx context.Context, text string) string {
	switch {
	case text == constant.CommandAllProducts:
		return in.allProducts(ctx)
	case text == constant.CommandStart, text == constant.CommandHelp:
		return constant.ReplyHelp
	}

	if arg, ok := productArgument(text); ok {
		return in.product(ctx, arg)
	}

	return constant.ReplyUnknownCommand
}

// productArgument matches "/product" followed by end of text or whitespace and
// returns the first argument, if any.
func productArgument(text string) (string, bool) {
	rest, found := strings.CutPrefix(text, constant.CommandProduct)
	if !found {
		return "", false
	}

	if rest != "" && !strings.ContainsAny(rest[:1], " \t\n\r") {
		return "", false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", true
	}

	return fields[0], true
}

func (in CommandBot) allProducts(ctx context.Context) string {
	products, err := in.Catalog.ListProducts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch products from catalog", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		return constant.ReplyProductsFailed
	}

	if len(products) == 0 {
		return constant.ReplyProductsNotFound
	}

	var sb strings.Builder
	sb.WriteString(constant.ProductListHeader)
	for _, product := range products {
		fmt.Fprintf(&sb, constant.ProductListLine,
			product.ID, product.NameRu, product.NameEn, common.FormatQuantity(in.Printer, product.StockQuantity))
	}

	return sb.String()
}

func (in CommandBot) product(ctx context.Context, arg string) string {
	if arg == "" {
		return constant.ReplyProductIdRequired
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return constant.ReplyInvalidIdFormat
	}

	product, err := in.Catalog.GetProduct(ctx, id)
	if errors.Is(err, errs.ErrProductNotFound) {
		return fmt.Sprintf(constant.ReplyProductNotFound, id)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch product by id from catalog", common.ExtractTraceIDFromCtx(ctx),
			slog.Int64(constant.LogFieldProductId, id),
			slog.Any(constant.LogFieldErr, err))
		return constant.ReplyProductFailed
	}

	return in.FormatProfile(product)
}

func (in CommandBot) FormatProfile(product model.ProductSnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, constant.ProductProfileHeader, product.ID)
	fmt.Fprintf(&sb, "- Название: %s / %s\n", product.NameEn, product.NameRu)
	fmt.Fprintf(&sb, "- Характеристики: %s\n", valueOrNone(product.Characteristics))

	if product.Weight != nil {
		fmt.Fprintf(&sb, "- Вес: %s кг\n", product.Weight.String())
	} else {
		fmt.Fprintf(&sb, "- Вес: %s\n", constant.ProductNoneValue)
	}

	fmt.Fprintf(&sb, "- Размер: %s\n", valueOrNone(product.Size))

	expiry := constant.ProductNoneValue
	if product.ExpiryDate != nil {
		expiry = product.ExpiryDate.String()
	}
	fmt.Fprintf(&sb, "- Срок годности: %s\n", expiry)

	fmt.Fprintf(&sb, "- Остаток: %s шт.\n", common.FormatQuantity(in.Printer, product.StockQuantity))

	if category, ok := product.CategoryDisplayName(); ok {
		fmt.Fprintf(&sb, "- Категория: %s\n", category)
	}

	return sb.String()
}

func valueOrNone(value *string) string {
	if value == nil || *value == "" {
		return constant.ProductNoneValue
	}
	return *value
}
