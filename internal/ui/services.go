package ui

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dexwatch/dexwatch/internal/logger"
	"github.com/dexwatch/dexwatch/internal/market"
	"github.com/dexwatch/dexwatch/internal/watchlist"
)

// ServiceProvider provides access to application services for UI screens
type ServiceProvider interface {
	GetMarket() *market.Service
	GetWatchlist() *watchlist.Store
	GetLogBuffer() *logger.LogBuffer
	GetLogger() *zap.Logger
	GetContext() context.Context

	GetChains() []string
	GetDebounceDelay() time.Duration
	GetRefreshInterval() time.Duration
}

// AppServices implements ServiceProvider with the wired application services
type AppServices struct {
	market    *market.Service
	watchlist *watchlist.Store
	buffer    *logger.LogBuffer
	logger    *zap.Logger
	ctx       context.Context

	chains          []string
	debounceDelay   time.Duration
	refreshInterval time.Duration
}

// NewAppServices creates the service provider handed to every screen.
func NewAppServices(
	ctx context.Context,
	svc *market.Service,
	wl *watchlist.Store,
	buffer *logger.LogBuffer,
	log *zap.Logger,
	chains []string,
	debounceDelay time.Duration,
	refreshInterval time.Duration,
) ServiceProvider {
	return &AppServices{
		market:          svc,
		watchlist:       wl,
		buffer:          buffer,
		logger:          log,
		ctx:             ctx,
		chains:          chains,
		debounceDelay:   debounceDelay,
		refreshInterval: refreshInterval,
	}
}

func (s *AppServices) GetMarket() *market.Service        { return s.market }
func (s *AppServices) GetWatchlist() *watchlist.Store    { return s.watchlist }
func (s *AppServices) GetLogBuffer() *logger.LogBuffer   { return s.buffer }
func (s *AppServices) GetLogger() *zap.Logger            { return s.logger }
func (s *AppServices) GetContext() context.Context       { return s.ctx }
func (s *AppServices) GetChains() []string               { return s.chains }
func (s *AppServices) GetDebounceDelay() time.Duration   { return s.debounceDelay }
func (s *AppServices) GetRefreshInterval() time.Duration { return s.refreshInterval }
