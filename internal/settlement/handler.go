package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bodhiforge/fintrack-ai-sub000/internal/balance"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/group"
	"github.com/bodhiforge/fintrack-ai-sub000/pkg/middleware"
	"github.com/bodhiforge/fintrack-ai-sub000/pkg/response"
)

// Handler handles HTTP requests for balances, plans, and payments
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.RecordPayment)
	r.Get("/group/{groupId}", h.ListPayments)
	r.Get("/group/{groupId}/balances", h.GroupBalances)
	r.Get("/group/{groupId}/plan", h.Plan)

	return r
}

// RecordPayment handles POST /settlements
// @Summary      Record a payment
// @Description  Record money that actually changed hands; it reduces the debt between the two users
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body RecordPaymentRequest true "Payment to record"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	fromUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		fromUserID = 1
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), fromUserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotPaySelf), errors.Is(err, ErrNonPositiveAmount):
			response.BadRequest(w, err.Error())
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to record payment")
		}
		return
	}

	response.JSON(w, http.StatusCreated, payment.ToResponse())
}

// ListPayments handles GET /settlements/group/{groupId}
// @Summary      List recorded payments
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Router       /settlements/group/{groupId} [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	payments, total, err := h.service.ListPayments(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list payments")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, paymentResponses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GroupBalances handles GET /settlements/group/{groupId}/balances
// @Summary      Get group balances
// @Description  Compute each member's net position per currency from non-deleted expenses and recorded payments
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=BalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/balances [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, &BalancesResponse{GroupID: groupID, Balances: balances})
}

// Plan handles GET /settlements/group/{groupId}/plan
// @Summary      Plan settlements
// @Description  Suggest the transfers that zero every member's balance, per currency, using greedy largest-creditor/largest-debtor matching
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        display_currency query string false "Annotate transfers with amounts converted to this currency (display only)"
// @Success      200 {object} response.APIResponse{data=PlanResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      500 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/plan [get]
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	plan, err := h.service.Plan(r.Context(), groupID, r.URL.Query().Get("display_currency"))
	if err != nil {
		var ierr *balance.InvariantError
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.As(err, &ierr):
			// Corrupted ledger; fail loud instead of suggesting a partial plan.
			response.InternalError(w, ierr.Error())
		default:
			response.InternalError(w, "Failed to plan settlements")
		}
		return
	}

	response.JSON(w, http.StatusOK, plan)
}
