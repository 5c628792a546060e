package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"stock-alert/common"
	"stock-alert/common/constant"
	"stock-alert/common/errs"
	"stock-alert/common/otel"
	"stock-alert/inbound/cron"
	"stock-alert/model"

	"github.com/go-playground/validator/v10"
)

// HookHttp receives product-written notifications from the catalog write path
// and runs the single-product threshold check.
type HookHttp struct {
	Hook     cron.PostWriteHook
	Validate *validator.Validate
}

func RegisterHookHttp(mux *http.ServeMux, hook cron.PostWriteHook, validate *validator.Validate) *HookHttp {
	in := &HookHttp{Hook: hook, Validate: validate}

	mux.HandleFunc("POST /api/hooks/product-written", in.productWritten)
	mux.HandleFunc("GET /health", in.health)

	return in
}

func (in HookHttp) productWritten(w http.ResponseWriter, r *http.Request) {
	var req model.ProductSnapshot
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "HookHttp.productWritten")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "product written receive request", slog.Int64(constant.LogFieldProductId, req.ID), slog.Int("stock_quantity", int(req.StockQuantity)), traceIdAttr)

	published, err := in.Hook.CheckProduct(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check product stock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusAccepted, model.ProductWrittenResponse{Published: published})
}

func (in HookHttp) health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
