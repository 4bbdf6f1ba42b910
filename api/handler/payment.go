package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/guruapp/backend/api/transport"
	"github.com/guruapp/backend/pkg/httpcontext"
	paymentUC "github.com/guruapp/backend/usecase/payment"
)

type PaymentHandler struct {
	baseHandler
	uc *paymentUC.UseCase
}

func NewPaymentHandler(uc *paymentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Submit a manual till-payment claim
// @Tags payments
// @Router /api/v1/payments [post]
func (h *PaymentHandler) Submit(ctx *fasthttp.RequestCtx) {
	var req transport.PaymentSubmitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.UserID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	claim, err := h.uc.Submit(stdCtx, paymentUC.SubmitInput{
		UserID:          req.UserID,
		ItemID:          req.ItemID,
		Amount:          req.Amount,
		TillNumber:      req.TillNumber,
		TransactionCode: req.TransactionCode,
		Kind:            req.Kind,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, claim)
}
