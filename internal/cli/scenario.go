package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/eshaffer321/giftpool/internal/application/service"
	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/eshaffer321/giftpool/internal/domain/pool"
)

// Scenario describes one gift event to evaluate offline. Amounts are plain
// YAML numbers.
type Scenario struct {
	Name      string `yaml:"name"`
	EventDate string `yaml:"event_date"`

	// Single-gift pool. ItemID, when set, limits the ledger to rows recorded
	// against that item.
	ItemID         string                `yaml:"item_id"`
	GiftPrice      float64               `yaml:"gift_price"`
	OriginalPrice  float64               `yaml:"original_price"`
	TotalCollected *float64              `yaml:"total_collected"`
	MarketPrices   []float64             `yaml:"market_prices"`
	Alternatives   []ScenarioAlternative `yaml:"alternatives"`
	Policies       ScenarioPolicies      `yaml:"policies"`

	Contributions []ScenarioContribution `yaml:"contributions"`

	// Wishlist planning.
	Wishlist      []ScenarioItem        `yaml:"wishlist"`
	Participants  []ScenarioParticipant `yaml:"participants"`
	WalletBalance float64               `yaml:"wallet_balance"`
}

// ScenarioPolicies picks the resolver policies. Empty values use
// proportional_refund and refund.
type ScenarioPolicies struct {
	Overfunding  string `yaml:"overfunding"`
	Underfunding string `yaml:"underfunding"`
}

type ScenarioContribution struct {
	UserID string  `yaml:"user_id"`
	Amount float64 `yaml:"amount"`
	ItemID string  `yaml:"item_id"`
	Date   string  `yaml:"date"`
}

type ScenarioAlternative struct {
	ID    string  `yaml:"id"`
	Title string  `yaml:"title"`
	URL   string  `yaml:"url"`
	Price float64 `yaml:"price"`
}

type ScenarioItem struct {
	ID           string  `yaml:"id"`
	Title        string  `yaml:"title"`
	Price        float64 `yaml:"price"`
	Priority     string  `yaml:"priority"`
	PooledAmount float64 `yaml:"pooled_amount"`
}

type ScenarioParticipant struct {
	UserID string `yaml:"user_id"`
	RSVP   string `yaml:"rsvp"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if sc.GiftPrice <= 0 && len(sc.Wishlist) == 0 {
		return nil, fmt.Errorf("%s: scenario needs a gift_price or a wishlist", path)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return &sc, nil
}

// Report is everything a scenario evaluation produced. Sections that did not
// apply are nil.
type Report struct {
	Name           string
	TotalCollected decimal.Decimal
	Fees           *allocator.FeeBreakdown
	Shares         []allocator.ContributorShare
	Overfunding    *allocator.OverfundingResult
	Underfunding   *allocator.UnderfundingResult
	PriceChange    *allocator.PriceChangeRecommendation
	Fraud          *allocator.FraudAssessment
	Purchases      []allocator.PlannedPurchase
	Plan           *service.ContributionPlan
}

// Evaluate runs a scenario through the allocation service. A gift price
// routes the pool to the overfunding or underfunding resolver depending on
// what was collected; a wishlist gets a purchase plan and a contribution plan.
func Evaluate(ctx context.Context, svc *service.AllocationService, sc *Scenario) (*Report, error) {
	rows, err := sc.ledger()
	if err != nil {
		return nil, err
	}
	eventDate, err := sc.eventDate()
	if err != nil {
		return nil, err
	}

	report := &Report{Name: sc.Name}

	if sc.GiftPrice > 0 {
		if err := evaluateGift(ctx, svc, sc, rows, report); err != nil {
			return nil, err
		}
	}

	if len(sc.Wishlist) > 0 {
		items := sc.wishlist()
		raised := decimal.Zero
		for _, item := range items {
			raised = raised.Add(item.PooledAmount)
		}

		report.Purchases, err = svc.PlanPurchases(ctx, items, raised, eventDate)
		if err != nil {
			return nil, fmt.Errorf("purchase plan: %w", err)
		}

		participants := make([]pool.Participant, len(sc.Participants))
		for i, p := range sc.Participants {
			participants[i] = pool.Participant{UserID: p.UserID, RSVP: pool.RSVP(p.RSVP)}
		}
		report.Plan, err = svc.PlanContributions(ctx, service.ContributionPlanRequest{
			Items:         items,
			Contributions: rows,
			Participants:  participants,
			WalletBalance: decimal.NewFromFloat(sc.WalletBalance),
		})
		if err != nil {
			return nil, fmt.Errorf("contribution plan: %w", err)
		}
	}

	return report, nil
}

func evaluateGift(ctx context.Context, svc *service.AllocationService, sc *Scenario, rows []pool.RawContribution, report *Report) error {
	var err error
	giftPrice := decimal.NewFromFloat(sc.GiftPrice)
	if sc.ItemID != "" {
		rows = pool.FilterByItem(rows, sc.ItemID)
	}

	report.TotalCollected = pool.Total(rows)
	if sc.TotalCollected != nil {
		report.TotalCollected = decimal.NewFromFloat(*sc.TotalCollected)
	}

	report.Fees, err = svc.CalculateFees(ctx, giftPrice)
	if err != nil {
		return fmt.Errorf("fees: %w", err)
	}

	if len(rows) > 0 {
		report.Shares, err = svc.AllocateContributions(ctx, rows, giftPrice)
		if err != nil {
			return fmt.Errorf("allocate: %w", err)
		}
	}

	switch report.TotalCollected.Cmp(giftPrice) {
	case 1:
		policy, err := allocator.ParseOverfundingPolicy(orDefault(sc.Policies.Overfunding, string(allocator.ProportionalRefund)))
		if err != nil {
			return err
		}
		report.Overfunding, err = svc.ResolveOverfunding(ctx, service.OverfundingRequest{
			TotalCollected: report.TotalCollected,
			TargetAmount:   giftPrice,
			Contributions:  rows,
			Policy:         policy,
		})
		if err != nil {
			return fmt.Errorf("overfunding: %w", err)
		}
	case -1:
		policy, err := allocator.ParseUnderfundingPolicy(orDefault(sc.Policies.Underfunding, string(allocator.RefundAll)))
		if err != nil {
			return err
		}
		report.Underfunding, err = svc.ResolveUnderfunding(ctx, service.UnderfundingRequest{
			TotalCollected: report.TotalCollected,
			TargetAmount:   giftPrice,
			Contributions:  rows,
			ItemInfo:       sc.itemInfo(),
			Policy:         policy,
		})
		if err != nil {
			return fmt.Errorf("underfunding: %w", err)
		}
	}

	if sc.OriginalPrice > 0 && sc.OriginalPrice != sc.GiftPrice {
		report.PriceChange, err = svc.ReconcilePriceChange(ctx, service.PriceChangeRequest{
			OriginalPrice:  decimal.NewFromFloat(sc.OriginalPrice),
			CurrentPrice:   giftPrice,
			TotalCollected: report.TotalCollected,
			Contributions:  rows,
		})
		if err != nil {
			return fmt.Errorf("price change: %w", err)
		}
	}

	if len(sc.MarketPrices) > 0 {
		market := make([]decimal.Decimal, len(sc.MarketPrices))
		for i, p := range sc.MarketPrices {
			market[i] = decimal.NewFromFloat(p)
		}
		report.Fraud, err = svc.CheckPrice(ctx, giftPrice, market)
		if err != nil {
			return fmt.Errorf("price check: %w", err)
		}
	}

	return nil
}

func (sc *Scenario) ledger() ([]pool.RawContribution, error) {
	rows := make([]pool.RawContribution, len(sc.Contributions))
	for i, c := range sc.Contributions {
		row := pool.RawContribution{
			ItemID: c.ItemID,
			UserID: c.UserID,
			Amount: decimal.NewFromFloat(c.Amount),
		}
		if c.Date != "" {
			date, err := time.Parse(time.DateOnly, c.Date)
			if err != nil {
				return nil, fmt.Errorf("contribution %d from %s: date must be YYYY-MM-DD", i+1, c.UserID)
			}
			row.Date = date
		}
		rows[i] = row
	}
	return rows, nil
}

func (sc *Scenario) eventDate() (time.Time, error) {
	if sc.EventDate == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(time.DateOnly, sc.EventDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("event_date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func (sc *Scenario) wishlist() []allocator.WishlistItem {
	items := make([]allocator.WishlistItem, len(sc.Wishlist))
	for i, item := range sc.Wishlist {
		items[i] = allocator.WishlistItem{
			ID:           item.ID,
			Title:        item.Title,
			Price:        decimal.NewFromFloat(item.Price),
			Priority:     allocator.ParsePriority(item.Priority),
			PooledAmount: decimal.NewFromFloat(item.PooledAmount),
		}
	}
	return items
}

func (sc *Scenario) itemInfo() *allocator.ItemInfo {
	if len(sc.Alternatives) == 0 {
		return nil
	}
	info := &allocator.ItemInfo{}
	for _, a := range sc.Alternatives {
		info.Alternatives = append(info.Alternatives, allocator.Alternative{
			ID:    a.ID,
			Title: a.Title,
			URL:   a.URL,
			Price: decimal.NewFromFloat(a.Price),
		})
	}
	return info
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
