package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/guruapp/backend/api/transport"
	"github.com/guruapp/backend/internal/infrastructure/audit"
	"github.com/guruapp/backend/pkg/httpcontext"
	accountUC "github.com/guruapp/backend/usecase/account"
	listingUC "github.com/guruapp/backend/usecase/listing"
	paymentUC "github.com/guruapp/backend/usecase/payment"
	verificationUC "github.com/guruapp/backend/usecase/verification"
)

// AdminHandler exposes the admin review surface: claim decisions, listing
// activation, user approval and the audit trail. Routes are guarded by the
// admin-key middleware.
type AdminHandler struct {
	baseHandler
	accounts *accountUC.UseCase
	listings *listingUC.UseCase
	payments *paymentUC.UseCase
	workflow *verificationUC.Workflow
	trail    *audit.Store
}

func NewAdminHandler(
	accounts *accountUC.UseCase,
	listings *listingUC.UseCase,
	payments *paymentUC.UseCase,
	workflow *verificationUC.Workflow,
	trail *audit.Store,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		accounts:    accounts,
		listings:    listings,
		payments:    payments,
		workflow:    workflow,
		trail:       trail,
	}
}

// @Summary List payment claims, newest first
// @Tags admin
// @Router /api/v1/admin/payments [get]
func (h *AdminHandler) ListPayments(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	claims, err := h.payments.ListAll(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, claims)
}

// @Summary Verify or reject a payment claim
// @Tags admin
// @Router /api/v1/admin/payments/{id}/decide [post]
func (h *AdminHandler) DecidePayment(ctx *fasthttp.RequestCtx) {
	id := h.pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing payment id")
		return
	}

	var req transport.DecideRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Verified == nil {
		h.respondInvalid(ctx, "verified flag is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	claim, err := h.workflow.Decide(stdCtx, id, *req.Verified)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, claim)
}

// @Summary List all listings, newest first
// @Tags admin
// @Router /api/v1/admin/items [get]
func (h *AdminHandler) ListItems(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.listings.ListAll(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Activate or deactivate a listing
// @Tags admin
// @Router /api/v1/admin/items/{id}/activate [post]
func (h *AdminHandler) ActivateItem(ctx *fasthttp.RequestCtx) {
	id := h.pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing item id")
		return
	}

	var req transport.ActivateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Active == nil {
		h.respondInvalid(ctx, "active flag is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	item, err := h.listings.Activate(stdCtx, id, *req.Active)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, item)
}

// @Summary List users, newest first
// @Tags admin
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.accounts.ListUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Approve or revoke a user
// @Tags admin
// @Router /api/v1/admin/users/{id}/approve [post]
func (h *AdminHandler) ApproveUser(ctx *fasthttp.RequestCtx) {
	id := h.pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}

	var req transport.ApproveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Approved == nil {
		h.respondInvalid(ctx, "approved flag is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.accounts.Approve(stdCtx, id, *req.Approved)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Recent audit entries
// @Tags admin
// @Router /api/v1/admin/audit [get]
func (h *AdminHandler) Audit(ctx *fasthttp.RequestCtx) {
	limit := 50
	if raw := string(ctx.QueryArgs().Peek("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.trail.Recent(limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
