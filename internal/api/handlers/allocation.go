package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/eshaffer321/giftpool/internal/api/dto"
	"github.com/eshaffer321/giftpool/internal/application/service"
	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/eshaffer321/giftpool/internal/domain/pool"
	"github.com/shopspring/decimal"
)

// AllocationService is what the allocation endpoints need from the
// application layer. *service.AllocationService implements it.
type AllocationService interface {
	CalculateFees(ctx context.Context, giftPrice decimal.Decimal) (*allocator.FeeBreakdown, error)
	AllocateContributions(ctx context.Context, rows []pool.RawContribution, giftPrice decimal.Decimal) ([]allocator.ContributorShare, error)
	ResolveOverfunding(ctx context.Context, req service.OverfundingRequest) (*allocator.OverfundingResult, error)
	ResolveUnderfunding(ctx context.Context, req service.UnderfundingRequest) (*allocator.UnderfundingResult, error)
	ReconcilePriceChange(ctx context.Context, req service.PriceChangeRequest) (*allocator.PriceChangeRecommendation, error)
	PlanPurchases(ctx context.Context, items []allocator.WishlistItem, totalRaised decimal.Decimal, eventDate time.Time) ([]allocator.PlannedPurchase, error)
	CheckPrice(ctx context.Context, giftPrice decimal.Decimal, marketPrices []decimal.Decimal) (*allocator.FraudAssessment, error)
	SummarizeFunding(ctx context.Context, items []allocator.WishlistItem) (*allocator.FundingSummary, error)
	PlanContributions(ctx context.Context, req service.ContributionPlanRequest) (*service.ContributionPlan, error)
}

// AllocationHandler handles the fund allocation endpoints. Every endpoint is
// a stateless POST: the body carries all inputs and nothing is stored.
type AllocationHandler struct {
	*Base
	svc AllocationService
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(svc AllocationService, logger *slog.Logger) *AllocationHandler {
	return &AllocationHandler{
		Base: NewBase(logger),
		svc:  svc,
	}
}

// Fees handles POST /api/fees.
func (h *AllocationHandler) Fees(w http.ResponseWriter, r *http.Request) {
	var req dto.FeesRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	fees, err := h.svc.CalculateFees(r.Context(), req.GiftPrice)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromFeeBreakdown(*fees))
}

// Allocate handles POST /api/contributions/allocate.
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	shares, err := h.svc.AllocateContributions(r.Context(), dto.ToRawContributions(req.Contributions), req.GiftPrice)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromShares(shares))
}

// Overfunding handles POST /api/funding/overfunding.
func (h *AllocationHandler) Overfunding(w http.ResponseWriter, r *http.Request) {
	var req dto.OverfundingRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if req.Policy == "" {
		req.Policy = string(allocator.ProportionalRefund)
	}
	policy, err := allocator.ParseOverfundingPolicy(req.Policy)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.svc.ResolveOverfunding(r.Context(), service.OverfundingRequest{
		TotalCollected: req.TotalCollected,
		TargetAmount:   req.TargetAmount,
		Contributions:  dto.ToRawContributions(req.Contributions),
		Policy:         policy,
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromOverfunding(result))
}

// Underfunding handles POST /api/funding/underfunding.
func (h *AllocationHandler) Underfunding(w http.ResponseWriter, r *http.Request) {
	var req dto.UnderfundingRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if req.Policy == "" {
		req.Policy = string(allocator.RefundAll)
	}
	policy, err := allocator.ParseUnderfundingPolicy(req.Policy)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.svc.ResolveUnderfunding(r.Context(), service.UnderfundingRequest{
		TotalCollected: req.TotalCollected,
		TargetAmount:   req.TargetAmount,
		Contributions:  dto.ToRawContributions(req.Contributions),
		ItemInfo:       dto.ToItemInfo(req.Alternatives),
		Policy:         policy,
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromUnderfunding(result))
}

// PriceChange handles POST /api/price-changes.
func (h *AllocationHandler) PriceChange(w http.ResponseWriter, r *http.Request) {
	var req dto.PriceChangeRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	rec, err := h.svc.ReconcilePriceChange(r.Context(), service.PriceChangeRequest{
		OriginalPrice:  req.OriginalPrice,
		CurrentPrice:   req.CurrentPrice,
		TotalCollected: req.TotalCollected,
		Contributions:  dto.ToRawContributions(req.Contributions),
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromPriceChange(rec))
}

// PurchasePlan handles POST /api/purchase-plan.
func (h *AllocationHandler) PurchasePlan(w http.ResponseWriter, r *http.Request) {
	var req dto.PurchasePlanRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	eventDate, err := dto.ParseEventDate(req.EventDate)
	if err != nil {
		h.WriteError(w, r, http.StatusBadRequest, dto.ValidationError("event_date must be YYYY-MM-DD"))
		return
	}

	plan, err := h.svc.PlanPurchases(r.Context(), dto.ToWishlistItems(req.Items), req.TotalRaised, eventDate)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromPurchasePlan(plan))
}

// FraudCheck handles POST /api/fraud-checks.
func (h *AllocationHandler) FraudCheck(w http.ResponseWriter, r *http.Request) {
	var req dto.FraudCheckRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	assessment, err := h.svc.CheckPrice(r.Context(), req.GiftPrice, req.MarketPrices)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromFraudAssessment(assessment))
}

// FundingSummary handles POST /api/funding/summary.
func (h *AllocationHandler) FundingSummary(w http.ResponseWriter, r *http.Request) {
	var req dto.FundingSummaryRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	summary, err := h.svc.SummarizeFunding(r.Context(), dto.ToWishlistItems(req.Items))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromFundingSummary(*summary))
}

// ContributionPlan handles POST /api/contributions/plan.
func (h *AllocationHandler) ContributionPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.ContributionPlanRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	plan, err := h.svc.PlanContributions(r.Context(), service.ContributionPlanRequest{
		Items:         dto.ToWishlistItems(req.Items),
		Contributions: dto.ToRawContributions(req.Contributions),
		Participants:  dto.ToParticipants(req.Participants),
		WalletBalance: req.WalletBalance,
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.FromContributionPlan(plan))
}
