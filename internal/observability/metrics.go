package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClaimDecisionsTotal counts terminal claim decisions by outcome.
var ClaimDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portal_claim_decisions_total",
		Help: "Claim decisions taken by administrators, by outcome.",
	},
	[]string{"decision"},
)

// ClaimsSubmittedTotal counts accepted claim submissions.
var ClaimsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "portal_claims_submitted_total",
		Help: "Claims accepted into PENDING state.",
	},
)
