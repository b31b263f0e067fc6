package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/eshaffer321/giftpool/internal/domain/pool"
	"github.com/eshaffer321/giftpool/internal/domain/validator"
	"github.com/eshaffer321/giftpool/internal/infrastructure/logging"
	"github.com/eshaffer321/giftpool/internal/infrastructure/tracing"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OverfundingRequest holds the inputs for resolving a surplus.
type OverfundingRequest struct {
	TotalCollected decimal.Decimal
	TargetAmount   decimal.Decimal
	Contributions  []pool.RawContribution // ledger rows, aggregated per user before routing
	Policy         allocator.OverfundingPolicy
}

// UnderfundingRequest holds the inputs for resolving a shortfall.
type UnderfundingRequest struct {
	TotalCollected decimal.Decimal
	TargetAmount   decimal.Decimal
	Contributions  []pool.RawContribution
	ItemInfo       *allocator.ItemInfo
	Policy         allocator.UnderfundingPolicy
}

// PriceChangeRequest holds the inputs for reconciling a price change.
type PriceChangeRequest struct {
	OriginalPrice  decimal.Decimal
	CurrentPrice   decimal.Decimal
	TotalCollected decimal.Decimal
	Contributions  []pool.RawContribution
}

// ContributionPlanRequest holds what is known about an event when planning
// how to raise the rest of its wishlist.
type ContributionPlanRequest struct {
	Items         []allocator.WishlistItem
	Contributions []pool.RawContribution
	Participants  []pool.Participant
	WalletBalance decimal.Decimal
}

// ItemContributionPlan is the plan for one item that still needs money.
type ItemContributionPlan struct {
	ItemID      string
	Title       string
	Remaining   decimal.Decimal
	Split       pool.Split
	Suggestions []pool.SuggestedAmount
}

// ContributionPlan is the overall plan for an event's wishlist.
type ContributionPlan struct {
	Summary               allocator.FundingSummary
	AverageContribution   decimal.Decimal
	PotentialFunding      decimal.Decimal
	PotentialContributors int
	Items                 []ItemContributionPlan
}

// AllocationService is the application entry point to the engine. It
// aggregates ledger rows, reconciles them against pooled totals, and wraps
// every engine call in a span and a log line.
type AllocationService struct {
	engine *allocator.Allocator
	logger *slog.Logger
	tracer trace.Tracer
}

// NewAllocationService creates a new allocation service. A nil logger or
// tracer disables that concern.
func NewAllocationService(engine *allocator.Allocator, logger *slog.Logger, tracer trace.Tracer) *AllocationService {
	if logger == nil {
		logger = logging.Discard()
	}
	if tracer == nil {
		tracer = tracing.Noop()
	}
	return &AllocationService{
		engine: engine,
		logger: logger,
		tracer: tracer,
	}
}

// CalculateFees returns the fee breakdown for a gift price.
func (s *AllocationService) CalculateFees(ctx context.Context, giftPrice decimal.Decimal) (_ *allocator.FeeBreakdown, err error) {
	_, span := s.start(ctx, "CalculateFees", money("gift_price", giftPrice))
	defer func() { s.finish(span, "calculate fees", err) }()

	fees, err := s.engine.CalculateTotalRequired(giftPrice)
	if err != nil {
		return nil, err
	}

	s.logger.Info("calculated fees", "gift_price", giftPrice, "total_required", fees.TotalRequired)
	return fees, nil
}

// AllocateContributions aggregates ledger rows per user and splits the gift
// price between them.
func (s *AllocationService) AllocateContributions(ctx context.Context, rows []pool.RawContribution, giftPrice decimal.Decimal) (_ []allocator.ContributorShare, err error) {
	_, span := s.start(ctx, "AllocateContributions",
		money("gift_price", giftPrice),
		attribute.Int("ledger_rows", len(rows)),
	)
	defer func() { s.finish(span, "allocate contributions", err) }()

	contributions, err := pool.AggregateByUser(rows)
	if err != nil {
		return nil, err
	}

	shares, err := s.engine.AllocateContributions(contributions, giftPrice)
	if err != nil {
		return nil, err
	}

	s.logger.Info("allocated contributions", "contributors", len(shares), "gift_price", giftPrice)
	return shares, nil
}

// ResolveOverfunding reconciles the ledger against the collected total and
// applies the overfunding policy.
func (s *AllocationService) ResolveOverfunding(ctx context.Context, req OverfundingRequest) (_ *allocator.OverfundingResult, err error) {
	_, span := s.start(ctx, "ResolveOverfunding",
		money("total_collected", req.TotalCollected),
		money("target_amount", req.TargetAmount),
		attribute.String("policy", string(req.Policy)),
	)
	defer func() { s.finish(span, "resolve overfunding", err) }()

	contributions, err := s.reconcile(req.Contributions, req.TotalCollected)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.HandleOverfunding(req.TotalCollected, req.TargetAmount, contributions, req.Policy)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resolved overfunding",
		"policy", result.Policy,
		"surplus", result.Surplus,
		"contributors", len(result.Contributors))
	return result, nil
}

// ResolveUnderfunding reconciles the ledger against the collected total and
// applies the underfunding policy.
func (s *AllocationService) ResolveUnderfunding(ctx context.Context, req UnderfundingRequest) (_ *allocator.UnderfundingResult, err error) {
	_, span := s.start(ctx, "ResolveUnderfunding",
		money("total_collected", req.TotalCollected),
		money("target_amount", req.TargetAmount),
		attribute.String("policy", string(req.Policy)),
	)
	defer func() { s.finish(span, "resolve underfunding", err) }()

	contributions, err := s.reconcile(req.Contributions, req.TotalCollected)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.HandleUnderfunding(req.TotalCollected, req.TargetAmount, contributions, req.ItemInfo, req.Policy)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("decision", string(result.Decision)))
	s.logger.Info("resolved underfunding",
		"policy", result.Policy,
		"decision", result.Decision,
		"shortfall", result.Shortfall)
	return result, nil
}

// ReconcilePriceChange recommends what to do after the gift's price moved.
func (s *AllocationService) ReconcilePriceChange(ctx context.Context, req PriceChangeRequest) (_ *allocator.PriceChangeRecommendation, err error) {
	_, span := s.start(ctx, "ReconcilePriceChange",
		money("original_price", req.OriginalPrice),
		money("current_price", req.CurrentPrice),
	)
	defer func() { s.finish(span, "reconcile price change", err) }()

	contributions, err := pool.AggregateByUser(req.Contributions)
	if err != nil {
		return nil, err
	}

	rec, err := s.engine.HandlePriceChange(req.OriginalPrice, req.CurrentPrice, req.TotalCollected, contributions)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("recommendation", string(rec.Recommendation)))
	s.logger.Info("reconciled price change",
		"recommendation", rec.Recommendation,
		"price_difference", rec.PriceDifference)
	return rec, nil
}

// PlanPurchases orders a wishlist and decides which items to buy.
func (s *AllocationService) PlanPurchases(ctx context.Context, items []allocator.WishlistItem, totalRaised decimal.Decimal, eventDate time.Time) (_ []allocator.PlannedPurchase, err error) {
	_, span := s.start(ctx, "PlanPurchases",
		money("total_raised", totalRaised),
		attribute.Int("items", len(items)),
	)
	defer func() { s.finish(span, "plan purchases", err) }()

	plan, err := s.engine.PrioritizePurchases(items, totalRaised, eventDate)
	if err != nil {
		return nil, err
	}

	buying := 0
	for _, p := range plan {
		if p.CanPurchase {
			buying++
		}
	}
	s.logger.Info("planned purchases", "items", len(plan), "buying", buying, "total_raised", totalRaised)
	return plan, nil
}

// CheckPrice compares a listed price with market reference prices.
func (s *AllocationService) CheckPrice(ctx context.Context, giftPrice decimal.Decimal, marketPrices []decimal.Decimal) (_ *allocator.FraudAssessment, err error) {
	_, span := s.start(ctx, "CheckPrice",
		money("gift_price", giftPrice),
		attribute.Int("sources", len(marketPrices)),
	)
	defer func() { s.finish(span, "check price", err) }()

	assessment, err := s.engine.CheckMarketPrice(giftPrice, marketPrices)
	if err != nil {
		return nil, err
	}

	if assessment.Assessment == allocator.AssessmentPotentialFraud {
		s.logger.Warn("price flagged",
			"gift_price", giftPrice,
			"market_average", assessment.AverageMarketPrice,
			"difference_pct", assessment.DifferencePercentage.StringFixed(1))
	} else {
		s.logger.Info("checked price", "gift_price", giftPrice, "assessment", assessment.Assessment)
	}
	return assessment, nil
}

// SummarizeFunding totals a wishlist's pooled money.
func (s *AllocationService) SummarizeFunding(ctx context.Context, items []allocator.WishlistItem) (_ *allocator.FundingSummary, err error) {
	_, span := s.start(ctx, "SummarizeFunding", attribute.Int("items", len(items)))
	defer func() { s.finish(span, "summarize funding", err) }()

	summary, err := s.engine.SummarizeFunding(items)
	if err != nil {
		return nil, err
	}

	s.logger.Info("summarized funding", "status", summary.Status, "funded", summary.Funded, "total_value", summary.TotalValue)
	return summary, nil
}

// PlanContributions works out how the unfunded part of a wishlist could be
// raised: the average contribution so far, what confirmed participants who
// have not paid yet might add, and a split with suggested amounts per item.
func (s *AllocationService) PlanContributions(ctx context.Context, req ContributionPlanRequest) (_ *ContributionPlan, err error) {
	_, span := s.start(ctx, "PlanContributions",
		attribute.Int("items", len(req.Items)),
		attribute.Int("participants", len(req.Participants)),
	)
	defer func() { s.finish(span, "plan contributions", err) }()

	summary, err := s.engine.SummarizeFunding(req.Items)
	if err != nil {
		return nil, err
	}

	contributions, err := pool.AggregateByUser(req.Contributions)
	if err != nil {
		return nil, err
	}
	contributorIDs := make([]string, len(contributions))
	for i, c := range contributions {
		contributorIDs[i] = c.UserID
	}

	average := pool.AverageContribution(summary.Funded, len(contributions))
	potential, potentialCount := pool.PotentialFunding(req.Participants, contributorIDs, average)

	plan := &ContributionPlan{
		Summary:               *summary,
		AverageContribution:   average,
		PotentialFunding:      potential,
		PotentialContributors: potentialCount,
	}

	for _, item := range req.Items {
		remaining := item.Price.Sub(item.PooledAmount)
		if !remaining.IsPositive() {
			continue
		}

		split, err := pool.SmartSplit(remaining, average)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		suggestions, err := pool.SuggestAmounts(remaining, req.WalletBalance)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}

		plan.Items = append(plan.Items, ItemContributionPlan{
			ItemID:      item.ID,
			Title:       item.Title,
			Remaining:   remaining,
			Split:       *split,
			Suggestions: suggestions,
		})
	}

	s.logger.Info("planned contributions",
		"items_needing_funds", len(plan.Items),
		"average_contribution", average,
		"potential_contributors", potentialCount)
	return plan, nil
}

// reconcile aggregates ledger rows and checks them against the pooled total.
func (s *AllocationService) reconcile(rows []pool.RawContribution, pooledTotal decimal.Decimal) ([]allocator.Contribution, error) {
	contributions, err := pool.AggregateByUser(rows)
	if err != nil {
		return nil, err
	}

	check := validator.ValidatePool(contributions, pooledTotal)
	if !check.Valid {
		s.logger.Warn("ledger does not match pooled total",
			"contributions_sum", check.ContributionsSum,
			"pooled_total", check.PooledTotal,
			"difference", check.Difference)
		return nil, fmt.Errorf("%w: %s", allocator.ErrInvalidInput, check.Reason)
	}

	s.logger.Debug("ledger reconciled", "contributors", len(contributions), "pooled_total", check.PooledTotal)
	return contributions, nil
}

func (s *AllocationService) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "allocator."+operation, trace.WithAttributes(attrs...))
}

// finish records err on the span and ends it. Rejected calls log at warn.
func (s *AllocationService) finish(span trace.Span, operation string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn(operation+" rejected", "error", err)
	}
	span.End()
}

func money(key string, amount decimal.Decimal) attribute.KeyValue {
	return attribute.String(key, amount.String())
}
