package service

import "landscape_supply_backend/internal/quotes/transport"

// allowedTransitions is the explicit state machine for quote status.
// draft may be issued or cancelled, issued may only be cancelled, and
// cancelled is terminal. Keeping the table in one place is what enforces
// that no transition can ever touch snapshot fields or totals.
var allowedTransitions = map[transport.QuoteStatus]map[transport.QuoteStatus]bool{
	transport.QuoteStatusDraft: {
		transport.QuoteStatusIssued:    true,
		transport.QuoteStatusCancelled: true,
	},
	transport.QuoteStatusIssued: {
		transport.QuoteStatusCancelled: true,
	},
	transport.QuoteStatusCancelled: {},
}

func canTransition(from, to transport.QuoteStatus) bool {
	return allowedTransitions[from][to]
}
