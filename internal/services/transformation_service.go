package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arpanp11/imaginify-saas/internal/media"
	"github.com/arpanp11/imaginify-saas/internal/transform"
)

var (
	ErrSessionNotFound       = errors.New("staging session not found")
	ErrNotSessionOwner       = errors.New("staging session belongs to another user")
	ErrUnknownTransformation = errors.New("unknown transformation type")
	ErrUnknownAspectRatio    = errors.New("unknown aspect ratio")
)

// DefaultDebounce is the quiet window applied to prompt and color edits
// before they reach the pending configuration.
const DefaultDebounce = time.Second

// TransformationService coordinates the edit-transform flow: each editing
// session holds a two-slot stager; applying merges pending into committed
// and deducts the per-transformation fee through the ledger.
type TransformationService struct {
	creditService *CreditService
	urlBuilder    *media.URLBuilder
	debounce      time.Duration

	mu       sync.Mutex
	sessions map[string]*stagingSession
}

type stagingSession struct {
	clerkID  string
	publicID string
	stager   *transform.Stager
}

func NewTransformationService(creditService *CreditService, urlBuilder *media.URLBuilder, debounce time.Duration) *TransformationService {
	return &TransformationService{
		creditService: creditService,
		urlBuilder:    urlBuilder,
		debounce:      debounce,
		sessions:      make(map[string]*stagingSession),
	}
}

type StartSessionParams struct {
	ClerkID  string
	Kind     string
	PublicID string
	// AspectRatio selects a preset canvas; Width/Height are used when no
	// preset applies (non-fill transformations keep the source dimensions).
	AspectRatio string
	Width       int
	Height      int
}

// StartSession opens an editing session seeded from the transformation
// kind's template and returns its id.
func (s *TransformationService) StartSession(params StartSessionParams) (string, error) {
	if transform.Template(params.Kind) == nil {
		return "", ErrUnknownTransformation
	}

	ratio := transform.AspectRatio{Width: params.Width, Height: params.Height}
	if params.AspectRatio != "" {
		preset, ok := transform.AspectRatioByKey(params.AspectRatio)
		if !ok {
			return "", ErrUnknownAspectRatio
		}
		ratio = preset
	}

	stager := transform.NewStager(params.Kind, s.debounce)
	stager.Seed(ratio)

	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &stagingSession{
		clerkID:  params.ClerkID,
		publicID: params.PublicID,
		stager:   stager,
	}
	s.mu.Unlock()

	return id, nil
}

// StageField records a field edit into the session's pending configuration
// immediately.
func (s *TransformationService) StageField(clerkID, sessionID, field string, value interface{}) error {
	sess, err := s.session(clerkID, sessionID)
	if err != nil {
		return err
	}
	sess.stager.Stage(field, value)
	return nil
}

// StageFieldDebounced is StageField behind the quiet window; rapid repeats
// collapse to the final value. Used for prompt and color input.
func (s *TransformationService) StageFieldDebounced(clerkID, sessionID, field string, value interface{}) error {
	sess, err := s.session(clerkID, sessionID)
	if err != nil {
		return err
	}
	sess.stager.StageDebounced(field, value)
	return nil
}

type ApplyResult struct {
	Config            transform.Config `json:"config"`
	TransformationURL string           `json:"transformation_url"`
	Width             int              `json:"width"`
	Height            int              `json:"height"`
	CreditBalance     int              `json:"credit_balance"`
}

// Apply commits the pending configuration and deducts the transformation
// fee. Callers with balance below the fee get ErrInsufficientCredits before
// anything is merged, and the ledger enforces the same floor on the
// deduction itself.
func (s *TransformationService) Apply(clerkID, sessionID string) (*ApplyResult, error) {
	sess, err := s.session(clerkID, sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.stager.HasPending() {
		return nil, transform.ErrNothingToApply
	}

	balance, err := s.creditService.GetBalance(clerkID)
	if err != nil {
		return nil, err
	}
	if balance < transform.CreditFee {
		return nil, ErrInsufficientCredits
	}

	committed, err := sess.stager.Apply()
	if err != nil {
		return nil, err
	}

	user, err := s.creditService.UpdateCredits(clerkID, -transform.CreditFee)
	if err != nil {
		return nil, err
	}

	width, height := sess.stager.Dimensions()

	return &ApplyResult{
		Config:            committed,
		TransformationURL: s.urlBuilder.TransformationURL(sess.publicID, width, height, committed),
		Width:             width,
		Height:            height,
		CreditBalance:     user.CreditBalance,
	}, nil
}

// Committed returns the session's committed configuration, for the save
// step.
func (s *TransformationService) Committed(clerkID, sessionID string) (transform.Config, error) {
	sess, err := s.session(clerkID, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.stager.Committed(), nil
}

// EndSession discards an editing session. Abandoned sessions hold no store
// state, only in-memory staging.
func (s *TransformationService) EndSession(clerkID, sessionID string) error {
	if _, err := s.session(clerkID, sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *TransformationService) session(clerkID, sessionID string) (*stagingSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.clerkID != clerkID {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}
