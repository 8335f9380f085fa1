package booking

import (
	"context"
	"errors"
	"log"
	"sync"

	"travelbudgeter/internal/models"
)

// Phase of one offer's booking session.
type Phase int

const (
	Closed Phase = iota
	Open
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

var (
	// ErrSubmissionInFlight rejects re-entry while an offer's order is being
	// placed. Other offers are unaffected.
	ErrSubmissionInFlight = errors.New("booking: submission already in flight for this offer")

	// ErrMissingOfferPayload means the offer carries no raw upstream payload,
	// so no order request can be constructed for it.
	ErrMissingOfferPayload = errors.New("booking: offer has no raw payload to submit")
)

// Booker is the slice of the upstream client the session manager needs.
type Booker interface {
	BookFlight(ctx context.Context, req models.BookingRequest) (*models.Order, error)
}

type offerState struct {
	expanded bool
	phase    Phase
	loading  bool
}

// SessionManager owns all per-offer UI state in one structure keyed by offer
// id: itinerary disclosure, booking phase, and the loading flag. Absent ids
// are collapsed and Closed. Offers are fully independent; one offer's
// submission never touches another offer's state.
type SessionManager struct {
	client Booker

	mu     sync.Mutex
	states map[string]*offerState
}

func NewSessionManager(client Booker) *SessionManager {
	return &SessionManager{
		client: client,
		states: make(map[string]*offerState),
	}
}

// ToggleDetails flips the expand/collapse flag for an offer and returns the
// new value. Purely local, no network effect.
func (m *SessionManager) ToggleDetails(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(id)
	st.expanded = !st.expanded
	return st.expanded
}

func (m *SessionManager) Expanded(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state(id).expanded
}

// OpenForm moves an offer's session from Closed to Open. Opening while the
// submission is in flight is rejected.
func (m *SessionManager) OpenForm(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(id)
	if st.phase == Submitting {
		return ErrSubmissionInFlight
	}
	st.phase = Open
	return nil
}

func (m *SessionManager) CloseForm(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(id)
	if st.phase != Submitting {
		st.phase = Closed
	}
}

func (m *SessionManager) Phase(id string) Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state(id).phase
}

func (m *SessionManager) Loading(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state(id).loading
}

// Submit validates the form and places the order for one offer. Validation
// failure keeps the form open and reports the unmet constraint without any
// network call. The session returns to Closed on success and on failure
// alike, with the loading flag cleared either way.
func (m *SessionManager) Submit(ctx context.Context, offer models.FlightOffer, details models.BookingDetails) (*models.Order, error) {
	m.mu.Lock()
	st := m.state(offer.ID)
	if st.phase == Submitting {
		m.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	// Claim the slot before validating so a concurrent Submit for the same
	// offer cannot slip past the check and place a duplicate order.
	st.phase = Submitting
	m.mu.Unlock()

	if err := ValidateDetails(details); err != nil {
		m.reopen(offer.ID)
		return nil, err
	}
	if len(offer.RawResponse) == 0 {
		m.reopen(offer.ID)
		return nil, ErrMissingOfferPayload
	}

	m.mu.Lock()
	st.loading = true
	m.mu.Unlock()

	order, err := m.client.BookFlight(ctx, models.BookingRequest{
		FlightOffer: offer.RawResponse,
		Passengers:  details.Passengers,
		Email:       details.Email,
		Address:     details.Address,
	})

	m.mu.Lock()
	st.phase = Closed
	st.loading = false
	m.mu.Unlock()

	if err != nil {
		log.Printf("Booking offer %s failed: %v", offer.ID, err)
		return nil, err
	}
	return order, nil
}

// reopen releases a claimed submission slot without completing it, leaving
// the form open for correction.
func (m *SessionManager) reopen(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state(id).phase = Open
}

// state returns the record for id, creating the default collapsed/Closed one.
// Callers hold m.mu.
func (m *SessionManager) state(id string) *offerState {
	st, ok := m.states[id]
	if !ok {
		st = &offerState{}
		m.states[id] = st
	}
	return st
}
