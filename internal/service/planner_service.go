// internal/service/planner_service.go
package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/scanplan/backend/internal/cache"
	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/store"
	"github.com/scanplan/backend/internal/summary"
	"github.com/scanplan/backend/internal/workflow"
)

// PlannerService fronts the cluster store with the workflow gate, the
// session mode, and the summary rollup cache. All mutating calls pass
// through the gate; the cache is invalidated synchronously on every store
// mutation so reads right after a write never see stale rollups.
type PlannerService struct {
	store *store.ClusterStore
	cache cache.SummaryCache

	modeMu sync.RWMutex
	mode   domain.Mode
}

func NewPlannerService(st *store.ClusterStore, cacheImpl cache.SummaryCache, defaultMode domain.Mode) *PlannerService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	s := &PlannerService{
		store: st,
		cache: cacheImpl,
		mode:  defaultMode,
	}
	st.OnMutate(func() {
		if err := cacheImpl.Invalidate(context.Background()); err != nil {
			log.Warn().Err(err).Msg("planner: summary cache invalidation failed")
		}
	})
	return s
}

// Mode returns the current session planning mode.
func (s *PlannerService) Mode() domain.Mode {
	s.modeMu.RLock()
	defer s.modeMu.RUnlock()
	return s.mode
}

// SetMode switches between budget and forecast planning.
func (s *PlannerService) SetMode(mode domain.Mode) {
	s.modeMu.Lock()
	s.mode = mode
	s.modeMu.Unlock()
	log.Info().Str("mode", string(mode)).Msg("planner: mode switched")
}

// CanEdit answers the permission probe for the current mode. It is
// recomputed on every call, never cached across a role or mode change.
func (s *PlannerService) CanEdit(role domain.Role, status domain.Status) bool {
	return workflow.CanEdit(role, s.Mode(), status)
}

// CreateCluster validates and stores a new draft cluster.
func (s *PlannerService) CreateCluster(ctx context.Context, role domain.Role, market, account string, products []domain.ProductEntry) (domain.Cluster, error) {
	if !workflow.CanEdit(role, s.Mode(), domain.StatusDraft) {
		return domain.Cluster{}, s.editDenied("create", domain.StatusDraft, role)
	}

	id, err := s.store.Create(market, account, products)
	if err != nil {
		return domain.Cluster{}, err
	}
	c, _ := s.store.Get(id)
	return c, nil
}

// ReplaceCluster swaps a cluster's product list.
func (s *PlannerService) ReplaceCluster(ctx context.Context, role domain.Role, id string, products []domain.ProductEntry) (domain.Cluster, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return domain.Cluster{}, domain.ErrClusterNotFound
	}
	if !workflow.CanEdit(role, s.Mode(), c.Status) {
		return domain.Cluster{}, s.editDenied("replace", c.Status, role)
	}

	if err := s.store.Replace(id, products); err != nil {
		return domain.Cluster{}, err
	}
	c, _ = s.store.Get(id)
	return c, nil
}

// DeleteCluster removes a cluster and its derived rows.
func (s *PlannerService) DeleteCluster(ctx context.Context, role domain.Role, id string) error {
	c, ok := s.store.Get(id)
	if !ok {
		return domain.ErrClusterNotFound
	}
	if !workflow.CanEdit(role, s.Mode(), c.Status) {
		return s.editDenied("delete", c.Status, role)
	}
	return s.store.Delete(id)
}

// AddScan schedules one more scan on a cluster product.
func (s *PlannerService) AddScan(ctx context.Context, role domain.Role, id, product string, scan domain.ScanEvent) (domain.Cluster, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return domain.Cluster{}, domain.ErrClusterNotFound
	}
	if !workflow.CanEdit(role, s.Mode(), c.Status) {
		return domain.Cluster{}, s.editDenied("edit", c.Status, role)
	}

	if err := s.store.AddScan(id, product, scan); err != nil {
		return domain.Cluster{}, err
	}
	c, _ = s.store.Get(id)
	return c, nil
}

// Publish advances the cluster workflow: draft -> review (commercial,
// forecast mode only), review -> approved (finance).
func (s *PlannerService) Publish(ctx context.Context, role domain.Role, id string) (domain.Cluster, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return domain.Cluster{}, domain.ErrClusterNotFound
	}

	next, err := workflow.Publish(role, s.Mode(), c.Status)
	if err != nil {
		return domain.Cluster{}, err
	}
	if err := s.store.SetStatus(id, next); err != nil {
		return domain.Cluster{}, err
	}
	log.Info().Str("cluster_id", id).Str("status", string(next)).Msg("planner: cluster published")
	c, _ = s.store.Get(id)
	return c, nil
}

// Reject resets a review/approved cluster back to draft across all its
// rows at once.
func (s *PlannerService) Reject(ctx context.Context, role domain.Role, id string) (domain.Cluster, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return domain.Cluster{}, domain.ErrClusterNotFound
	}

	next, err := workflow.Reject(role, s.Mode(), c.Status)
	if err != nil {
		return domain.Cluster{}, err
	}
	if err := s.store.SetStatus(id, next); err != nil {
		return domain.Cluster{}, err
	}
	log.Info().Str("cluster_id", id).Msg("planner: cluster rejected back to draft")
	c, _ = s.store.Get(id)
	return c, nil
}

// Cluster returns one cluster.
func (s *PlannerService) Cluster(id string) (domain.Cluster, bool) {
	return s.store.Get(id)
}

// Clusters lists all clusters.
func (s *PlannerService) Clusters() []domain.Cluster {
	return s.store.List()
}

// Rows returns the full flattened planner row set.
func (s *PlannerService) Rows() []domain.PlannerRow {
	return s.store.Rows()
}

// Summary returns the market x brand rollups, served from cache when
// fresh and recomputed from the row set otherwise.
func (s *PlannerService) Summary(ctx context.Context) ([]domain.SummaryRow, error) {
	if rows, ok, err := s.cache.Get(ctx); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("planner: summary cache get failed")
	}

	rows := summary.Aggregate(s.store.Rows())

	if err := s.cache.Set(ctx, rows); err != nil {
		log.Warn().Err(err).Msg("planner: summary cache set failed")
	}
	return rows, nil
}

func (s *PlannerService) editDenied(action string, status domain.Status, role domain.Role) error {
	return &domain.InvalidTransitionError{Action: action, From: status, Mode: s.Mode(), Role: role}
}
