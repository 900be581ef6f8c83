// internal/store/store.go
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/planner"
	"github.com/scanplan/backend/internal/projection"
	"github.com/scanplan/backend/internal/synthetic"
)

// ClusterStore is the authoritative owner of promotion clusters. Clusters
// are keyed by id; the flattened planner rows for each cluster are derived
// eagerly on every mutation so reads right after a write always observe
// fresh rows. A replace is delete-then-insert of the whole derived row set
// for that cluster, never a partial row update.
type ClusterStore struct {
	mu       sync.RWMutex
	clusters map[string]*domain.Cluster
	order    []string // insertion order, for deterministic listing
	rows     map[string][]domain.PlannerRow

	engine *projection.Engine
	gen    *synthetic.Generator

	// onMutate runs after every successful mutation, outside row
	// derivation but inside the write lock; the service hooks summary
	// cache invalidation here.
	onMutate func()
}

// New creates an empty store.
func New(engine *projection.Engine, gen *synthetic.Generator) *ClusterStore {
	return &ClusterStore{
		clusters: make(map[string]*domain.Cluster),
		rows:     make(map[string][]domain.PlannerRow),
		engine:   engine,
		gen:      gen,
	}
}

// OnMutate registers a hook invoked after every successful mutation.
func (s *ClusterStore) OnMutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMutate = fn
}

// Create validates and inserts a new cluster, returning its generated id.
// Nothing is stored when validation fails.
func (s *ClusterStore) Create(market, account string, products []domain.ProductEntry) (string, error) {
	if err := validate(market, account, products); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c := &domain.Cluster{
		ID:        uuid.NewString(),
		Market:    market,
		Account:   account,
		Products:  domain.CloneProducts(products),
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.enrich(c)

	s.clusters[c.ID] = c
	s.order = append(s.order, c.ID)
	s.rebuildRows(c)
	s.mutated()

	log.Debug().Str("cluster_id", c.ID).Str("market", market).Msg("cluster created")
	return c.ID, nil
}

// Replace swaps a cluster's entire product list and re-derives its rows.
func (s *ClusterStore) Replace(id string, products []domain.ProductEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clusters[id]
	if !ok {
		return domain.ErrClusterNotFound
	}
	if err := validate(c.Market, c.Account, products); err != nil {
		return err
	}

	// Carry existing trend series forward by product name so a payload
	// that omits them does not shift every projection for the product.
	prior := make(map[string][]domain.TrendPoint, len(c.Products))
	for _, p := range c.Products {
		if p.Trend != nil {
			prior[p.Product] = p.Trend
		}
	}

	c.Products = domain.CloneProducts(products)
	for i := range c.Products {
		if c.Products[i].Trend == nil {
			c.Products[i].Trend = prior[c.Products[i].Product]
		}
	}
	c.UpdatedAt = time.Now()
	s.enrich(c)
	s.rebuildRows(c)
	s.mutated()
	return nil
}

// Delete removes a cluster along with all its derived rows.
func (s *ClusterStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clusters[id]; !ok {
		return domain.ErrClusterNotFound
	}
	delete(s.clusters, id)
	delete(s.rows, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mutated()
	return nil
}

// AddScan schedules one more scan for a product already in the cluster.
// A second scan for the same (product, week) pair is rejected before
// anything mutates.
func (s *ClusterStore) AddScan(id, product string, scan domain.ScanEvent) error {
	if _, err := domain.ParseWeek(scan.Week); err != nil {
		return err
	}
	if scan.ScanAmount <= 0 {
		return &domain.ValidationError{Field: "scan_amount", Reason: "must be greater than zero"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clusters[id]
	if !ok {
		return domain.ErrClusterNotFound
	}

	var entry *domain.ProductEntry
	for pi := range c.Products {
		if c.Products[pi].Product == product {
			entry = &c.Products[pi]
			break
		}
	}
	if entry == nil {
		return &domain.ValidationError{Field: "product", Reason: "not part of cluster"}
	}
	if entry.HasWeek(scan.Week) {
		return &domain.DuplicateScanWeekError{Product: product, Week: scan.Week}
	}

	entry.Scans = append(entry.Scans, scan)
	c.UpdatedAt = time.Now()
	s.enrich(c)
	s.rebuildRows(c)
	s.mutated()
	return nil
}

// SetStatus updates a cluster's workflow status. Transition legality is
// the workflow gate's concern; this only checks enumeration membership.
// The status change propagates to every derived row of the cluster
// atomically.
func (s *ClusterStore) SetStatus(id string, status domain.Status) error {
	if _, ok := domain.ParseStatus(string(status)); !ok {
		return &domain.ValidationError{Field: "status", Reason: "unknown value"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clusters[id]
	if !ok {
		return domain.ErrClusterNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	s.rebuildRows(c)
	s.mutated()
	return nil
}

// Get returns a deep copy of one cluster.
func (s *ClusterStore) Get(id string) (domain.Cluster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clusters[id]
	if !ok {
		return domain.Cluster{}, false
	}
	return c.Clone(), true
}

// List returns deep copies of all clusters in insertion order.
func (s *ClusterStore) List() []domain.Cluster {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Cluster, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.clusters[id].Clone())
	}
	return out
}

// Rows returns a snapshot of all derived planner rows in cluster
// insertion order.
func (s *ClusterStore) Rows() []domain.PlannerRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PlannerRow, 0)
	for _, id := range s.order {
		out = append(out, s.rows[id]...)
	}
	return out
}

// RowsFor returns the derived rows of one cluster.
func (s *ClusterStore) RowsFor(id string) []domain.PlannerRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.rows[id]
	out := make([]domain.PlannerRow, len(rows))
	copy(out, rows)
	return out
}

func (s *ClusterStore) rebuildRows(c *domain.Cluster) {
	s.rows[c.ID] = planner.BuildRows(c.Clone(), s.engine)
}

func (s *ClusterStore) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// validate applies the saveability rules: market and account set, at least
// one product, every product with at least one scan, a positive scan
// amount on every scan, and no duplicate weeks within a product.
func validate(market, account string, products []domain.ProductEntry) error {
	if market == "" {
		return &domain.ValidationError{Field: "market", Reason: "is required"}
	}
	if account == "" {
		return &domain.ValidationError{Field: "account", Reason: "is required"}
	}
	if len(products) == 0 {
		return &domain.ValidationError{Field: "products", Reason: "at least one product is required"}
	}
	for _, p := range products {
		if len(p.Scans) == 0 {
			return &domain.ValidationError{Field: "products", Reason: "every product needs at least one scan"}
		}
		weeks := make(map[string]struct{}, len(p.Scans))
		for _, scan := range p.Scans {
			if scan.ScanAmount <= 0 {
				return &domain.ValidationError{Field: "scan_amount", Reason: "must be greater than zero"}
			}
			if _, dup := weeks[scan.Week]; dup {
				return &domain.DuplicateScanWeekError{Product: p.Product, Week: scan.Week}
			}
			weeks[scan.Week] = struct{}{}
		}
	}
	return nil
}
