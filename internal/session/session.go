package session

import (
	"context"

	"github.com/user/jobboard/internal/listing"
	"github.com/user/jobboard/internal/posting"
	"go.uber.org/zap"
)

// Fetcher is satisfied by *loader.Loader.
type Fetcher interface {
	Fetch(ctx context.Context) ([]posting.Posting, error)
}

// Navigator opens a URL outside the application. Nothing comes back.
type Navigator interface {
	Open(url string) error
}

type Options struct {
	Policy    listing.Policy
	SubmitURL string
}

// Loaded is the outcome of the session's single fetch.
type Loaded struct {
	Postings []posting.Posting
	Err      error
}

// Session holds the state of one run of the viewer: the fetched postings,
// the search term and the selection. It is not safe for concurrent use;
// every method except the thunk returned by Start must be called from the
// same event loop.
type Session struct {
	fetcher Fetcher
	nav     Navigator
	logger  *zap.Logger
	opts    Options

	postings  []posting.Posting
	term      string
	selection listing.Selection

	started bool
	loading bool
	lastErr error
}

func New(fetcher Fetcher, nav Navigator, logger *zap.Logger, opts Options) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		fetcher: fetcher,
		nav:     nav,
		logger:  logger,
		opts:    opts,
	}
}

// Start marks the session as loading and returns the fetch to run. The
// returned func only talks to the network, so it may run on another
// goroutine; hand its result to Apply. Later calls return nil.
func (s *Session) Start(ctx context.Context) func() Loaded {
	if s.started {
		return nil
	}
	s.started = true
	s.loading = true

	fetcher := s.fetcher
	return func() Loaded {
		postings, err := fetcher.Fetch(ctx)
		return Loaded{Postings: postings, Err: err}
	}
}

// Apply stores a fetch result. A failed fetch keeps whatever postings the
// session already had.
func (s *Session) Apply(l Loaded) {
	s.loading = false
	if l.Err != nil {
		s.lastErr = l.Err
		s.logger.Error("failed to fetch postings, keeping previous listing",
			zap.Error(l.Err),
			zap.Int("kept", len(s.postings)))
		return
	}
	s.lastErr = nil
	s.postings = l.Postings
	s.logger.Info("postings loaded", zap.Int("count", len(l.Postings)))
}

// Initialize runs the fetch synchronously. Failures are logged, never
// returned.
func (s *Session) Initialize(ctx context.Context) {
	run := s.Start(ctx)
	if run == nil {
		return
	}
	s.Apply(run())
}

func (s *Session) Loading() bool {
	return s.loading
}

// Err is the error of the last fetch, for diagnostics only.
func (s *Session) Err() error {
	return s.lastErr
}

func (s *Session) Postings() []posting.Posting {
	return append([]posting.Posting(nil), s.postings...)
}

func (s *Session) SetSearchTerm(term string) {
	s.term = term
}

func (s *Session) SearchTerm() string {
	return s.term
}

func (s *Session) Policy() listing.Policy {
	return s.opts.Policy
}

func (s *Session) View() listing.View {
	return listing.Derive(s.postings, s.term, s.opts.Policy)
}

// Select shows the posting with the given ID. It reports false and leaves
// the selection alone when no posting has that ID.
func (s *Session) Select(id string) bool {
	for _, p := range s.postings {
		if p.ID == id {
			s.selection.Select(p)
			return true
		}
	}
	s.logger.Debug("select ignored, unknown posting", zap.String("id", id))
	return false
}

func (s *Session) Dismiss() {
	s.selection.Dismiss()
}

func (s *Session) State() listing.State {
	return s.selection.State()
}

func (s *Session) Selected() (posting.Posting, bool) {
	return s.selection.Current()
}

// OpenLink opens the selected posting's link. It does nothing when no
// posting is selected or the posting has no link.
func (s *Session) OpenLink() error {
	p, ok := s.selection.Current()
	if !ok || p.Link == "" {
		return nil
	}
	return s.open(p.Link)
}

// OpenSubmit opens the page for posting or promoting a job.
func (s *Session) OpenSubmit() error {
	if s.opts.SubmitURL == "" {
		return nil
	}
	return s.open(s.opts.SubmitURL)
}

func (s *Session) open(url string) error {
	if s.nav == nil {
		return nil
	}
	if err := s.nav.Open(url); err != nil {
		s.logger.Warn("failed to open link", zap.String("url", url), zap.Error(err))
		return err
	}
	return nil
}
