package httpadapter

import (
	"time"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

type entityState struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	PauseReason  string `json:"pause_reason,omitempty"`
	DailySpend   int64  `json:"daily_spend"`
	MonthlySpend int64  `json:"monthly_spend"`
}

type transitionDTO struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type spendResponse struct {
	SpendID     string          `json:"spend_id"`
	Campaign    entityState     `json:"campaign"`
	Brand       entityState     `json:"brand"`
	Transitions []transitionDTO `json:"transitions"`
	Duplicate   bool            `json:"duplicate,omitempty"`
}

type sweepResponse struct {
	Job        string    `json:"job"`
	Scanned    int       `json:"scanned"`
	Changed    int       `json:"changed"`
	Failed     int       `json:"failed"`
	Started    time.Time `json:"started"`
	DurationMs int64     `json:"duration_ms"`
}

type reconcileResponse struct {
	Entity        string         `json:"entity"`
	ID            string         `json:"id"`
	StoredDaily   int64          `json:"stored_daily"`
	LedgerDaily   int64          `json:"ledger_daily"`
	StoredMonthly int64          `json:"stored_monthly"`
	LedgerMonthly int64          `json:"ledger_monthly"`
	Drifted       bool           `json:"drifted"`
	Repaired      bool           `json:"repaired"`
	Transition    *transitionDTO `json:"transition,omitempty"`
}

func toSpendResponse(res *port.IngestResult) spendResponse {
	out := spendResponse{
		SpendID: res.Spend.ID.String(),
		Campaign: entityState{
			ID:           res.Campaign.ID.String(),
			Status:       string(res.Campaign.Status),
			PauseReason:  string(res.Campaign.PauseReason),
			DailySpend:   res.Campaign.DailySpend,
			MonthlySpend: res.Campaign.MonthlySpend,
		},
		Brand: entityState{
			ID:           res.Brand.ID.String(),
			Status:       string(res.Brand.State().Status),
			PauseReason:  string(res.Brand.PauseReason),
			DailySpend:   res.Brand.DailySpend,
			MonthlySpend: res.Brand.MonthlySpend,
		},
		Transitions: make([]transitionDTO, 0, len(res.Transitions)),
		Duplicate:   res.Duplicate,
	}
	for _, t := range res.Transitions {
		out.Transitions = append(out.Transitions, toTransitionDTO(t))
	}
	return out
}

func toTransitionDTO(t domain.Transition) transitionDTO {
	return transitionDTO{
		Entity: string(t.Entity),
		ID:     t.ID.String(),
		From:   t.From.String(),
		To:     t.To.String(),
	}
}

func toSweepResponse(r port.SweepReport) sweepResponse {
	return sweepResponse{
		Job:        r.Job,
		Scanned:    r.Scanned,
		Changed:    r.Changed,
		Failed:     r.Failed,
		Started:    r.Started,
		DurationMs: r.Duration.Milliseconds(),
	}
}

func toReconcileResponse(rec *port.Reconciliation) reconcileResponse {
	out := reconcileResponse{
		Entity:        string(rec.Entity),
		ID:            rec.ID.String(),
		StoredDaily:   rec.StoredDaily,
		LedgerDaily:   rec.LedgerDaily,
		StoredMonthly: rec.StoredMonthly,
		LedgerMonthly: rec.LedgerMonthly,
		Drifted:       rec.Drifted(),
		Repaired:      rec.Repaired,
	}
	if rec.Transition != nil {
		t := toTransitionDTO(*rec.Transition)
		out.Transition = &t
	}
	return out
}
