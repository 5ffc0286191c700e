package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** SearchGateway sends a query to the search backend.
**************************************************************************************************/
type SearchGateway interface {
	Search(ctx context.Context, q utils.TSearchQuery) (utils.TResultSet, error)
}

/**************************************************************************************************
** ShootLibrary is what a session needs from the library: resolving selections and storing the
** results of a tag search as a new shoot.
**************************************************************************************************/
type ShootLibrary interface {
	ShootSource
	AddResultsShoot(tags []string, results []json.RawMessage) string
}

/**************************************************************************************************
** Session ties the builder, the history and the search gateway together.
**************************************************************************************************/
type Session struct {
	builder *Builder
	history *History
	library ShootLibrary
	gateway SearchGateway
	logger  *logrus.Logger
	now     func() time.Time
}

/**************************************************************************************************
** NewSession creates a search session.
**
** @param lib - Shoot library
** @param gateway - Search backend
** @param history - History receiving submissions (a new one is created when nil)
** @param logger - Logger instance for output
** @return *Session - Session instance, or nil when a dependency is missing
**************************************************************************************************/
func NewSession(lib ShootLibrary, gateway SearchGateway, history *History, logger *logrus.Logger) *Session {
	if lib == nil || gateway == nil || logger == nil {
		return nil
	}
	if history == nil {
		history = NewHistory()
	}
	return &Session{
		builder: NewBuilder(lib),
		history: history,
		library: lib,
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

// History returns the session history.
func (s *Session) History() *History { return s.history }

// Build validates the input without submitting it.
func (s *Session) Build(state *State) (utils.TSearchQuery, error) {
	return s.builder.Build(state)
}

/**************************************************************************************************
** Submit builds the query, records it in the history and sends it. The history entry is kept
** whatever the gateway outcome; a validation failure records nothing. A successful tags search
** also stores the returned images as a new results shoot.
**
** @param ctx - Context for the gateway call
** @param state - Builder input
** @return utils.TSearchQuery - The submitted query (zero value on validation failure)
** @return utils.TResultSet - Backend results
** @return error - *ValidationError or the gateway error
**************************************************************************************************/
func (s *Session) Submit(ctx context.Context, state *State) (utils.TSearchQuery, utils.TResultSet, error) {
	q, err := s.builder.Build(state)
	if err != nil {
		s.logger.Warnf("⚠️ %v", err)
		return utils.TSearchQuery{}, utils.TResultSet{}, err
	}

	entry := s.history.Record(q, s.now())
	s.logger.WithFields(logrus.Fields{
		"Mode":   q.Mode,
		"Images": len(q.BaseImages),
		"Tags":   len(q.Tags),
		"Entry":  entry.ID,
	}).Infof("🔎 Submitting search")

	results, err := s.gateway.Search(ctx, q)
	if err != nil {
		s.logger.Errorf("Error searching: %v", err)
		return q, utils.TResultSet{}, fmt.Errorf("error searching: %w", err)
	}

	if q.Mode == utils.ModeTags {
		s.library.AddResultsShoot(q.Tags, results.Images)
	}
	s.logger.Infof("🟢 %d result(s)", len(results.Results)+len(results.Images))
	return q, results, nil
}
